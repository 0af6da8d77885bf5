// cmd_expect.go -- implements the "expect" command

package main

import (
	"fmt"
)

type expectCmd struct {
}

func (t *expectCmd) Reset() {
}

func (t *expectCmd) Run(env *TestEnv, args []string) error {
	exp := map[string][]string{
		"lo":    {},
		"ro":    {},
		"diff":  {},
		"same":  {},
		"funny": {},
	}

	for i := range args {
		arg := args[i]

		key, vals, err := Split(arg)
		if err != nil {
			return err
		}

		_, ok := exp[key]
		if !ok {
			return fmt.Errorf("expect: unknown keyword %s", key)
		}

		if len(vals) > 0 {
			exp[key] = append(exp[key], vals...)
		}
	}

	// run the real default chain over env.Lhs/env.Rhs and collect
	// every resolved verdict into the same lo/ro/diff/same/funny
	// shape the script already speaks.
	_, rep, err := compareTrees(env)
	if err != nil {
		return fmt.Errorf("expect: %w", err)
	}

	env.log.Debug("lo=%v ro=%v diff=%v same=%v funny=%v\n",
		rep.LeftOnly, rep.RightOnly, rep.DiffNames, rep.SameNames, rep.Funny)

	have := map[string][]string{
		"lo":    rep.LeftOnly,
		"ro":    rep.RightOnly,
		"diff":  rep.DiffNames,
		"same":  rep.SameNames,
		"funny": rep.Funny,
	}

	for k, v := range exp {
		if err := match(k, v, have[k]); err != nil {
			return fmt.Errorf("expect: %w", err)
		}
	}

	return nil
}

func match(key string, exp, have []string) error {
	if len(exp) != len(have) {
		return fmt.Errorf("%s: exp %d entries, have %d (%v vs %v)", key, len(exp), len(have), exp, have)
	}

	mkmap := func(v []string) map[string]bool {
		m := make(map[string]bool)
		for _, nm := range v {
			m[nm] = true
		}
		return m
	}

	e := mkmap(exp)
	h := mkmap(have)

	// every element in have must be in exp
	for _, nm := range have {
		if _, ok := e[nm]; !ok {
			return fmt.Errorf("%s: missing %s", key, nm)
		}
	}

	// every element in exp must be in have
	for _, nm := range exp {
		if _, ok := h[nm]; !ok {
			return fmt.Errorf("%s exp to see %s", key, nm)
		}
	}
	return nil
}

func (t *expectCmd) Name() string {
	return "expect"
}

var _ Cmd = &expectCmd{}

func init() {
	RegisterCommand(&expectCmd{})
}
