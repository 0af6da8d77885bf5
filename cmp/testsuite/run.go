// run.go -- build the lhs/rhs trees for one script and drive them
// through the xdiff engine.
//
// Adapted from go-fio's testsuite/run.go: that version built two
// cmp.Tree values and compared them once via cmp.DirCmp. This DSL
// compares via xdiff.Dispatch instead, since a tree here may itself
// be an archive (ar/tar/zip/gzip) rather than only a plain directory,
// and the default chain recurses through both uniformly.

package main

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/opencoff/xdiff"
	"github.com/opencoff/xdiff/cmp"
	"github.com/opencoff/xdiff/ignore"

	"github.com/opencoff/go-logger"
)

// TestEnv captures the runtime environment of the current testsuite.
type TestEnv struct {
	Lhs string
	Rhs string

	TestRoot string
	TestName string

	// Start anchors every fixture file/dir's mtime so a script can
	// build two trees that agree up to container-level timestamps
	// (the scenario spec 8 #5/#7 rely on) without racing the clock.
	Start time.Time

	log logger.Logger
}

func RunTest(tname string, cfg *config, ts []TestSuite) (err error) {
	if len(ts) < 2 {
		return fmt.Errorf("too few commands in test suite")
	}

	env, err := makeEnv(tname, cfg)
	if err != nil {
		return err
	}

	defer func(e *error) {
		if *e != nil {
			env.log.Warning("test complete: error:\n%s", *e)
		} else {
			env.log.Info("test complete; no errors")
		}
		env.log.Close()
	}(&err)

	lookup := map[string]string{
		"LHS":   env.Lhs,
		"RHS":   env.Rhs,
		"ROOT":  env.TestRoot,
		"TNAME": env.TestName,
	}

	env.log.Info("testroot %s; starting test %s ..", env.TestRoot, env.TestName)
	for _, t := range ts {
		cmd := t.Cmd

		args := make([]string, 0, len(t.Args))
		for _, s := range t.Args[1:] {
			d := os.Expand(s, func(key string) string {
				v, ok := lookup[key]
				if !ok {
					Die("%s: can't expand env %s", cmd.Name(), key)
				}
				return v
			})
			args = append(args, d)
		}

		cmd.Reset()
		if err = cmd.Run(env, args); err != nil {
			return fmt.Errorf("%s: %s: %w", tname, cmd.Name(), err)
		}
	}

	if err = os.RemoveAll(env.TestRoot); err != nil {
		Die("%s: cleanup %s: %v", env.TestName, env.TestRoot, err)
	}

	return nil
}

func makeEnv(tname string, cfg *config) (*TestEnv, error) {
	tmpdir := path.Join(cfg.tempdir, tname)
	lhs := path.Join(tmpdir, "lhs")
	rhs := path.Join(tmpdir, "rhs")
	logfile := path.Join(tmpdir, "xdiff.log")
	if cfg.logStdout {
		logfile = "STDOUT"
	}

	if err := os.MkdirAll(lhs, 0700); err != nil {
		return nil, fmt.Errorf("%s: LHS: %w", tname, err)
	}
	if err := os.MkdirAll(rhs, 0700); err != nil {
		return nil, fmt.Errorf("%s: RHS: %w", tname, err)
	}

	log, err := logger.NewLogger(logfile, logger.LOG_DEBUG, tname, logger.Ldate|logger.Ltime|logger.Lmicroseconds|logger.Lfileloc)
	if err != nil {
		return nil, fmt.Errorf("%s: logfile: %w", tname, err)
	}

	e := &TestEnv{
		Lhs:      lhs,
		Rhs:      rhs,
		TestRoot: tmpdir,
		TestName: tname,
		Start:    time.Now(),
		log:      log,
	}
	return e, nil
}

func (t *TestEnv) String() string {
	return fmt.Sprintf("TestEnv: name %s: Root: %s\n\tLHS %s, RHS %s\n",
		t.TestName, t.TestRoot, t.Lhs, t.Rhs)
}

// compareTrees runs one top-level Dispatch over env.Lhs/env.Rhs
// through the real default chain, collecting every resolved verdict
// via a collectReporter so the "expect" command can assert against
// it the way the old cmp.DirCmp's LeftOnly/RightOnly/Diff/Same/Funny
// map once let it.
func compareTrees(env *TestEnv) (xdiff.Verdict, *collectReporter, error) {
	reg := xdiff.NewItemRegistry()
	lhs := reg.FindOrCreate(env.Lhs, nil)
	rhs := reg.FindOrCreate(env.Rhs, nil)

	ign, err := ignore.New(nil)
	if err != nil {
		return xdiff.Indeterminate, nil, err
	}

	rep := newCollectReporter(env.Lhs, env.Rhs)
	chain := cmp.DefaultChain()
	c := xdiff.NewComparison(reg, lhs, rhs, chain, ign, false, 0, rep)

	v, err := xdiff.Dispatch(c)
	if err != nil {
		return xdiff.Indeterminate, rep, err
	}
	return v, rep, nil
}
