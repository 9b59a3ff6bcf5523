package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/folio/folio/internal/admin"
	"github.com/folio/folio/pkg/client"
	"github.com/folio/folio/pkg/logger"
)

// session is what every subcommand works with.
type session struct {
	client *client.Client
	auth   *admin.AuthState
	out    io.Writer
}

func (s *session) close() { s.auth.Close() }

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".folio-token.json"
	}
	return filepath.Join(dir, "folio", "token.json")
}

// bindFlags lets v resolve names from fs, after FOLIO_* variables when the
// flag was not given.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			logger.Warnf("folioctl: bind flag %s: %v", name, err)
		}
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var sess *session
	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Manage a portfolio site from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(v.GetString("log-level"))
			logger.SetOutput(cmd.ErrOrStderr())
			store, err := client.NewFileTokenStore(v.GetString("token-file"))
			if err != nil {
				return fmt.Errorf("open token file: %w", err)
			}
			errOut := cmd.ErrOrStderr()
			nav := client.NavigatorFunc(func() {
				fmt.Fprintln(errOut, "session expired or invalid; run `folioctl login`")
			})
			c := client.New(v.GetString("backend-url"), client.WithTokenStore(store), client.WithNavigator(nav))
			sess = &session{client: c, auth: admin.NewAuthState(c), out: cmd.OutOrStdout()}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if sess != nil {
				sess.close()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("backend-url", "http://localhost:8001", "API origin")
	pf.String("token-file", defaultTokenFile(), "session token file")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	bindFlags(v, pf, "backend-url", "token-file", "log-level")

	get := func() *session { return sess }
	root.AddCommand(
		newLoginCmd(get, v),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newSectionsCmd(get),
		newMessagesCmd(get),
		newUploadCmd(get),
		newFilesCmd(get),
		newStatsCmd(get),
	)
	return root
}
