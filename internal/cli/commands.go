package cli

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/lthash/internal/adapters/digest"
	"github.com/iamNilotpal/lthash/internal/core/services/lthash"
	"github.com/iamNilotpal/lthash/internal/core/services/snapshot"
	"github.com/iamNilotpal/lthash/internal/serialize"
)

// ErrMismatch is returned by verify when the checksums differ.
var ErrMismatch = stderrors.New("checksum mismatch")

// Lines longer than this are rejected by sum.
const maxLineSize = 16 * 1024 * 1024

func toBytes(args []string) [][]byte {
	out := make([][]byte, len(args))
	for i, arg := range args {
		out[i] = []byte(arg)
	}
	return out
}

// fingerprint is a short BLAKE3 digest of the full checksum.
func fingerprint(checksum []byte) string {
	return hex.EncodeToString(digest.NewBLAKE3().Digest(checksum))
}

func encode(format string, checksum []byte) (string, error) {
	switch format {
	case "hex":
		return hex.EncodeToString(checksum), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(checksum), nil
	case "fingerprint":
		return fingerprint(checksum), nil
	default:
		return "", fmt.Errorf("unknown format %q (want hex, base64 or fingerprint)", format)
	}
}

func newSumCommand(a *app) *cobra.Command {
	var whole bool
	var save string
	var format string

	cmd := &cobra.Command{
		Use:   "sum [files...]",
		Short: "Print the checksum of every line (or every file) of the input",
		Long: "Folds each line of the given files, or of stdin when no files are given, into a fresh\n" +
			"checksum and prints it. The saved state is neither read nor modified.",
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			h, err := a.newEngine()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if err := foldReader(h, cmd.InOrStdin(), whole); err != nil {
					return fmt.Errorf("stdin: %w", err)
				}
			}
			for _, name := range args {
				if err := foldFile(h, name, whole); err != nil {
					return err
				}
			}

			out, err := encode(format, h.GetChecksum())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if save != "" {
				if err := a.store.SaveTo(cmd.Context(), save, snapshot.Capture(h)); err != nil {
					return err
				}
				a.log.Infow("checksum saved", "path", save, "files", len(args))
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&whole, "whole", false, "treat each input as one element instead of one element per line")
	cmd.Flags().StringVar(&save, "save", "", "also write the checksum to this snapshot file")
	cmd.Flags().StringVarP(&format, "format", "f", "hex", "output format: hex, base64 or fingerprint")
	return cmd
}

func foldFile(h *lthash.LtHash, name string, whole bool) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := foldReader(h, f, whole); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func foldReader(h *lthash.LtHash, r io.Reader, whole bool) error {
	if whole {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		h.Add(data)
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		h.Add(scanner.Bytes())
	}
	return scanner.Err()
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <element>...",
		Short: "Add elements to the saved checksum",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), "add", func(h *lthash.LtHash) {
				h.Add(toBytes(args)...)
			})
		}),
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <element>...",
		Short: "Remove elements from the saved checksum",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), "remove", func(h *lthash.LtHash) {
				h.Remove(toBytes(args)...)
			})
		}),
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <old> <new>",
		Short: "Replace one element of the saved checksum with another",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), "update", func(h *lthash.LtHash) {
				h.Update([]byte(args[0]), []byte(args[1]))
			})
		}),
	}
}

func newResetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Empty the saved checksum",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), "reset", func(h *lthash.LtHash) {
				h.Reset()
			})
		}),
	}
}

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <snapshot>",
		Short: "Check that the saved checksum equals the one in another snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			h, err := a.loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			other, err := a.store.LoadFrom(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if other.Algorithm != h.Algorithm() || other.ByteOrder != h.ByteOrder() {
				return fmt.Errorf(
					"%w: %s uses %s/%s, state uses %s/%s", ErrMismatch,
					args[0], other.Algorithm, other.ByteOrder, h.Algorithm(), h.ByteOrder(),
				)
			}

			if !h.ChecksumEquals(other.Checksum) {
				a.log.Warnw("checksum mismatch", "state", a.store.Path(), "other", args[0])
				return ErrMismatch
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		}),
	}
}

type showOutput struct {
	Path        string    `json:"path"`
	Version     uint32    `json:"version"`
	Algorithm   string    `json:"algorithm"`
	ByteOrder   string    `json:"byte_order"`
	DigestSize  int       `json:"digest_size"`
	Empty       bool      `json:"empty"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print metadata about the saved checksum as JSON",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			snap, err := a.store.Load(cmd.Context())
			if err != nil {
				return err
			}

			h, err := a.newEngine()
			if err != nil {
				return err
			}
			if err := snapshot.Restore(h, snap); err != nil {
				return err
			}

			return serialize.WriteJSON(cmd.OutOrStdout(), showOutput{
				Path:        a.store.Path(),
				Version:     snap.Version,
				Algorithm:   snap.Algorithm,
				ByteOrder:   string(snap.ByteOrder),
				DigestSize:  h.DigestSize(),
				Empty:       h.IsEmpty(),
				Fingerprint: fingerprint(snap.Checksum),
				CreatedAt:   snap.CreatedAt,
			})
		}),
	}
}
