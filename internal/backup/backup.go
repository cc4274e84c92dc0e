// Package backup makes the file-level copy of the input taken before a run
// writes anything else.
package backup

import (
	"io"
	"os"

	"media-relinker/internal/apperrors"
)

const op = "backup"

// Copy copies src to dst byte for byte, replacing dst if it exists, then
// gives dst the permission bits and modification time of src. The access
// time of dst is also set to the modification time of src.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &apperrors.IOError{Op: op, Path: src, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return &apperrors.IOError{Op: op, Path: src, Err: err}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &apperrors.IOError{Op: op, Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &apperrors.IOError{Op: op, Path: dst, Err: err}
	}

	if err := out.Close(); err != nil {
		return &apperrors.IOError{Op: op, Path: dst, Err: err}
	}

	// OpenFile only applies the mode when it creates the file.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return &apperrors.IOError{Op: op, Path: dst, Err: err}
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return &apperrors.IOError{Op: op, Path: dst, Err: err}
	}

	return nil
}
