// cmd_archive.go -- implements the "archive" command: packs a fixture
// directory (or file, for gzip) into one of the container formats the
// engine itself can read, so a script can build lhs/rhs archive
// fixtures instead of only plain directories (spec 8 scenarios 3/5/6/7).
//
// Only the formats the standard library can both read and write are
// supported here: tar, zip, gzip. ar/cpio/bz2/xz have no writer in the
// retrieved example pack (see DESIGN.md, same limitation already
// recorded for the box package's own tests), so "archive" rejects
// those format names rather than fabricate an encoder.

package main

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// archiveCmd takes key="val" options via Split (format=/target=/src=/out=)
// rather than a *flag.FlagSet like mkfileCmd, since its options aren't
// positional CLI-style flags.
type archiveCmd struct{}

func (t *archiveCmd) Name() string { return "archive" }

func (t *archiveCmd) Reset() {}

// archive format=tar target=lhs src=pkg out=pkg.tar
func (t *archiveCmd) Run(env *TestEnv, args []string) error {
	opt := map[string]string{}
	for _, arg := range args {
		key, vals, err := Split(arg)
		if err != nil {
			return err
		}
		if len(vals) != 1 {
			return fmt.Errorf("archive: %s: expected a single value", key)
		}
		opt[key] = vals[0]
	}

	format := opt["format"]
	target := opt["target"]
	src := opt["src"]
	out := opt["out"]
	if format == "" || target == "" || src == "" || out == "" {
		return fmt.Errorf("archive: need format=, target=, src= and out=")
	}

	var targets []string
	switch target {
	case "lhs", "rhs":
		targets = []string{target}
	case "both":
		targets = []string{"lhs", "rhs"}
	default:
		return fmt.Errorf("archive: unknown target %s", target)
	}

	for _, tgt := range targets {
		base := path.Join(env.TestRoot, tgt)
		srcPath := path.Join(base, src)
		outPath := path.Join(base, out)

		env.log.Debug("archive %s: %s -> %s (%s)", tgt, srcPath, outPath, format)

		var err error
		switch format {
		case "tar":
			err = tarDir(srcPath, outPath)
		case "zip":
			err = zipDir(srcPath, outPath)
		case "gzip":
			err = gzipFile(srcPath, outPath)
		default:
			return fmt.Errorf("archive: unsupported format %s (no writer available for ar/cpio/bz2/xz)", format)
		}
		if err != nil {
			return fmt.Errorf("archive: %s: %w", outPath, err)
		}
	}
	return nil
}

func tarDir(srcDir, outPath string) error {
	fd, err := os.OpenFile(outPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()

	tw := tar.NewWriter(fd)
	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == srcDir {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		sfd, err := os.Open(p)
		if err != nil {
			return err
		}
		defer sfd.Close()
		_, err = io.Copy(tw, sfd)
		return err
	})
	if err != nil {
		return err
	}
	return tw.Close()
}

func zipDir(srcDir, outPath string) error {
	fd, err := os.OpenFile(outPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()

	zw := zip.NewWriter(fd)
	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == srcDir || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		sfd, err := os.Open(p)
		if err != nil {
			return err
		}
		defer sfd.Close()
		_, err = io.Copy(w, sfd)
		return err
	})
	if err != nil {
		return err
	}
	return zw.Close()
}

func gzipFile(srcFile, outPath string) error {
	sfd, err := os.Open(srcFile)
	if err != nil {
		return err
	}
	defer sfd.Close()

	dfd, err := os.OpenFile(outPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer dfd.Close()

	gw := gzip.NewWriter(dfd)
	if _, err := io.Copy(gw, sfd); err != nil {
		return err
	}
	return gw.Close()
}

var _ Cmd = &archiveCmd{}

func init() {
	RegisterCommand(&archiveCmd{})
}
