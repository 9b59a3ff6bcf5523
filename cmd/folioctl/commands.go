package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/folio/folio/internal/admin"
	"github.com/folio/folio/internal/site"
)

var errSignedOut = errors.New("not signed in; run `folioctl login`")

func (s *session) notifier(cmd *cobra.Command) admin.Notifier {
	w := cmd.ErrOrStderr()
	return admin.NotifierFunc(func(n admin.Notification) {
		if n.Variant == admin.VariantDestructive {
			fmt.Fprintf(w, "%s: %s\n", n.Title, n.Description)
		}
	})
}

// signedIn confirms the stored token with the backend.
func (s *session) signedIn(cmd *cobra.Command) error {
	if err := s.auth.Restore(cmd.Context()); err != nil {
		return fmt.Errorf("%w: %v", errSignedOut, err)
	}
	if !s.auth.Guard() {
		return errSignedOut
	}
	return nil
}

func table(s *session) *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
}

func newLoginCmd(get func() *session, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			email, _ := cmd.Flags().GetString("email")
			password := v.GetString("password")
			if email == "" || password == "" {
				return errors.New("--email and --password (or FOLIO_PASSWORD) are required")
			}
			res := s.auth.Login(cmd.Context(), email, password)
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintf(s.out, "signed in as %s\n", s.auth.User().Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "admin email")
	cmd.Flags().String("password", "", "admin password")
	bindFlags(v, cmd.Flags(), "password")
	return cmd
}

func newLogoutCmd(get func() *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			s.auth.Logout(cmd.Context())
			fmt.Fprintln(s.out, "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(get func() *session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			if err := s.signedIn(cmd); err != nil {
				return err
			}
			u := s.auth.User()
			fmt.Fprintf(s.out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
}

func newSectionsCmd(get func() *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "Print the public sections in render order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			content, err := site.Load(cmd.Context(), s.client)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}
			tw := table(s)
			fmt.Fprintln(tw, "ORDER\tSECTION\tLABEL")
			for _, c := range site.Compose(content, content.Settings) {
				sec, _ := site.Lookup(c.ID)
				fmt.Fprintf(tw, "%d\t%s\t%s\n", c.Config.Order, c.ID, sec.Label)
			}
			return tw.Flush()
		},
	}
}

func newMessagesCmd(get func() *session) *cobra.Command {
	return &cobra.Command{
		Use:   "messages",
		Short: "List contact form messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			if err := s.signedIn(cmd); err != nil {
				return err
			}
			inbox := admin.NewMessageList(s.client.ContactMessages, s.notifier(cmd))
			if err := inbox.Load(cmd.Context()); err != nil {
				return err
			}
			tw := table(s)
			fmt.Fprintln(tw, "RECEIVED\tFROM\tSUBJECT")
			for _, m := range inbox.Messages() {
				fmt.Fprintf(tw, "%s\t%s <%s>\t%s\n", m.CreatedAt.Format(time.RFC3339), m.Name, m.Email, m.Subject)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%d messages, %d unread\n", len(inbox.Messages()), inbox.Unread())
			return nil
		},
	}
}

func newUploadCmd(get func() *session) *cobra.Command {
	var subfolder string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			if err := s.signedIn(cmd); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			url, err := s.client.Upload(cmd.Context(), filepath.Base(args[0]), f, subfolder)
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, url)
			return nil
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "section subfolder (hero, projects, certifications, testimonials, blog)")
	return cmd
}

func newFilesCmd(get func() *session) *cobra.Command {
	var subfolder string
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List uploaded files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			if err := s.signedIn(cmd); err != nil {
				return err
			}
			files, err := s.client.ListFiles(cmd.Context(), subfolder)
			if err != nil {
				return err
			}
			tw := table(s)
			fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED\tURL")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.Filename, f.Size, f.Modified.Format(time.RFC3339), f.URL)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "only list this subfolder")
	return cmd
}

func newStatsCmd(get func() *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show content counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			if err := s.signedIn(cmd); err != nil {
				return err
			}
			eds := admin.NewEditors(s.client, s.notifier(cmd))
			if err := eds.LoadAll(cmd.Context()); err != nil {
				return err
			}
			st := eds.Stats()
			tw := table(s)
			for _, row := range []struct {
				name string
				n    int
			}{
				{"projects", st.Projects},
				{"experience", st.Experience},
				{"education", st.Education},
				{"certifications", st.Certifications},
				{"testimonials", st.Testimonials},
				{"articles", st.Articles},
				{"published", st.Published},
				{"messages", st.Messages},
				{"unread", st.Unread},
			} {
				fmt.Fprintf(tw, "%s\t%d\n", row.name, row.n)
			}
			return tw.Flush()
		},
	}
}
