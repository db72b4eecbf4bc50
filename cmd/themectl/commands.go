package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"themeforge/internal/bridge"
	"themeforge/internal/client"
	"themeforge/internal/themecss"
	"themeforge/internal/tokens"
)

// options are the persistent flags shared by every command.
type options struct {
	server   string
	token    string
	theme    string
	draftDir string
	timeout  time.Duration
	out      io.Writer
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDraftDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".themeforge"
	}
	return filepath.Join(home, ".themeforge")
}

// session mounts the theme's editing session: the on-disk draft if there
// is one, else the published snapshot.
func (o *options) session(ctx context.Context) *bridge.Session {
	remote := client.New(o.server, o.token, o.timeout)
	s := bridge.NewSession(o.theme, bridge.FileDraft{Dir: o.draftDir}, remote, tokens.GradientPolicy{})
	s.Mount(ctx)
	if n := s.Notice(); n != nil {
		fmt.Fprintf(o.out, "notice: %s\n", n.Message)
	}
	return s
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &options{out: out}

	root := &cobra.Command{
		Use:           "themectl",
		Short:         "Edit and publish themeforge design tokens",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&o.server, "server", envOr("THEMEFORGE_URL", "http://localhost:8080"), "themeforge server URL")
	flags.StringVar(&o.token, "token", os.Getenv("THEMEFORGE_TOKEN"), "admin token for publishing")
	flags.StringVar(&o.theme, "theme", envOr("THEME_ID", "gdlinova"), "theme id")
	flags.StringVar(&o.draftDir, "draft-dir", envOr("THEMECTL_DRAFT_DIR", defaultDraftDir()), "directory holding local drafts")
	flags.DurationVar(&o.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		newStatusCmd(o),
		newPullCmd(o),
		newPushCmd(o),
		newExportCmd(o),
		newSetColorCmd(o),
		newSetSectionCmd(o),
		newResetCmd(o),
		newHashTokenCmd(o),
	)
	return root
}

func newStatusCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the working snapshot came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := o.session(cmd.Context())
			snap := s.Snapshot()
			fmt.Fprintf(o.out, "theme:     %s\n", o.theme)
			fmt.Fprintf(o.out, "source:    %s\n", s.Source())
			fmt.Fprintf(o.out, "families:  %d\n", len(snap.Families))
			fmt.Fprintf(o.out, "gradients: %d\n", len(snap.Gradients))
			if snap.UpdatedAt != nil {
				fmt.Fprintf(o.out, "published: %s\n", snap.UpdatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newPullCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace the local draft with the published theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := (bridge.FileDraft{Dir: o.draftDir}).ClearDraft(ctx, o.theme); err != nil {
				return err
			}
			s := o.session(ctx)
			if s.State() != bridge.StateReady || s.Notice() != nil {
				return fmt.Errorf("pull %s failed", o.theme)
			}
			if s.Source() != bridge.SourceRemote {
				fmt.Fprintf(o.out, "%s is not published yet; draft holds the defaults\n", o.theme)
				return nil
			}
			fmt.Fprintf(o.out, "pulled %s\n", o.theme)
			return nil
		},
	}
}

func newPushCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Publish the local draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := o.session(ctx)
			if err := s.Publish(ctx); err != nil {
				var invalid *bridge.ValidationError
				if errors.As(err, &invalid) {
					return fmt.Errorf("draft is not publishable: %s", invalid.Message)
				}
				if n := s.Notice(); n != nil {
					return fmt.Errorf("%s", n.Message)
				}
				return err
			}
			fmt.Fprintf(o.out, "published %s\n", o.theme)
			return nil
		},
	}
}

func newExportCmd(o *options) *cobra.Command {
	var (
		outFile   string
		published bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the theme as tokens.css",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var css string
			if published {
				var err error
				css, err = client.New(o.server, o.token, o.timeout).TokensCSS(ctx, o.theme)
				if err != nil {
					return fmt.Errorf("export published theme: %w", err)
				}
			} else {
				css = themecss.Generate(o.session(ctx).Snapshot())
			}

			if outFile == "" || outFile == "-" {
				_, err := io.WriteString(o.out, css)
				return err
			}
			if err := os.WriteFile(outFile, []byte(css), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			fmt.Fprintf(o.out, "wrote %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "tokens.css", "output file, or - for stdout")
	cmd.Flags().BoolVar(&published, "published", false, "export the published theme instead of the draft")
	return cmd
}

func newSetColorCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "set-color <variable> <hex>",
		Short:   "Set a color token in the draft",
		Example: "  themectl set-color color-cyan-400 '#00b3ad'",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := o.session(ctx)

			// The leading dashes are optional so the name is not parsed as a flag.
			variable := args[0]
			if !strings.HasPrefix(variable, "--") {
				variable = "--" + variable
			}

			familyID, tokenID := "", ""
			for _, f := range s.Snapshot().Families {
				for _, t := range f.Tokens {
					if t.Variable == variable {
						familyID, tokenID = f.ID, t.ID
					}
				}
			}
			if tokenID == "" {
				return fmt.Errorf("no token named %s", variable)
			}

			msg, err := s.Apply(ctx, tokens.Op{Kind: tokens.OpSetTokenValue, FamilyID: familyID, TokenID: tokenID, Value: args[1]})
			if err != nil {
				return err
			}
			if msg != "" {
				return fmt.Errorf("%s", msg)
			}
			fmt.Fprintf(o.out, "%s set in draft; run 'themectl push' to publish\n", variable)
			return nil
		},
	}
}

func newSetSectionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-section <section|all> <preset>",
		Short: "Set a section overlay preset in the draft",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := o.session(ctx)

			op := tokens.Op{Kind: tokens.OpSetSectionFilter, Section: args[0], Value: args[1]}
			if args[0] == "all" {
				op = tokens.Op{Kind: tokens.OpSetAllSections, Value: args[1]}
			}
			msg, err := s.Apply(ctx, op)
			if err != nil {
				return err
			}
			if msg != "" {
				return fmt.Errorf("%s", msg)
			}
			fmt.Fprintf(o.out, "section %s set to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newResetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the local draft and restore the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			o.session(ctx).RestoreDefaults(ctx)
			fmt.Fprintf(o.out, "draft for %s reset to defaults\n", o.theme)
			return nil
		},
	}
}

func newHashTokenCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token [token]",
		Short: "Print the ADMIN_TOKEN_HASH for a token, generating one if omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			} else {
				buf := make([]byte, 24)
				if _, err := rand.Read(buf); err != nil {
					return fmt.Errorf("generate token: %w", err)
				}
				token = hex.EncodeToString(buf)
				fmt.Fprintf(o.out, "THEMEFORGE_TOKEN=%s\n", token)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash token: %w", err)
			}
			fmt.Fprintf(o.out, "ADMIN_TOKEN_HASH=%s\n", hash)
			return nil
		},
	}
}
