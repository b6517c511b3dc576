package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"residence/server/internal/models"
)

func (a *App) newsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "news", Short: "Manage news articles"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List news",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.table()
			fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTITLE")
			for _, n := range a.session.Store.News() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Date, n.Category, n.Title)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a news article with its HTML body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := a.session.Store.NewsItem(args[0])
			if !ok {
				return fmt.Errorf("news article not found: %s", args[0])
			}
			fmt.Fprintf(a.out, "id:       %s\nslug:     %s\ntitle:    %s\ndate:     %s\ncategory: %s\nimage:    %s\nexcerpt:  %s\n\n%s\n",
				n.ID, n.Slug, n.Title, n.Date, n.Category, n.Image, n.Excerpt, n.Content)
			return nil
		},
	})

	var item models.NewsItem
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a news article. Content is raw HTML and is published as is.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if item.Title == "" {
				return fmt.Errorf("--title is required")
			}
			item.ID = models.NewID()
			a.session.Store.AddNews(item)
			fmt.Fprintln(a.out, item.ID)
			return nil
		},
	}
	add.Flags().StringVar(&item.Title, "title", "", "title")
	add.Flags().StringVar(&item.Slug, "slug", "", "URL slug")
	add.Flags().StringVar(&item.Excerpt, "excerpt", "", "short summary")
	add.Flags().StringVar(&item.Content, "content", "", "HTML body")
	add.Flags().StringVar(&item.Date, "date", "", "publication date")
	add.Flags().StringVar(&item.Image, "image", "", "cover image URL")
	add.Flags().StringVar(&item.Category, "category", "", "category")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a news article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Store.DeleteNews(args[0])
			return nil
		},
	})

	return cmd
}

func (a *App) pagesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pages", Short: "Manage per page SEO settings"}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <path>",
		Short: "Show the SEO settings a page is rendered with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, own := a.session.Store.PageByPath(args[0])
			seo := a.session.Store.PageSEO(args[0])
			source := "custom"
			if !own {
				source = "default"
			}
			fmt.Fprintf(a.out, "path:        %s (%s)\ntitle:       %s\ndescription: %s\nh1:          %s\n",
				seo.Path, source, seo.Title, seo.Description, seo.H1)
			return nil
		},
	})

	var page models.PageSettings
	set := &cobra.Command{
		Use:   "set <path>",
		Short: "Create or replace the SEO settings of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page.Path = args[0]
			if _, ok := a.session.Store.PageByPath(page.Path); ok {
				a.session.Store.UpdatePageSettings(page)
			} else {
				a.session.Store.AddPageSettings(page)
			}
			return nil
		},
	}
	set.Flags().StringVar(&page.Title, "title", "", "document title")
	set.Flags().StringVar(&page.Description, "description", "", "meta description")
	set.Flags().StringVar(&page.H1, "h1", "", "page heading")
	cmd.AddCommand(set)

	return cmd
}

func (a *App) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Show or change site wide settings"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := a.session.Store.SiteSettings()
			if !ok {
				fmt.Fprintln(a.out, "site settings are not set")
				return nil
			}
			fmt.Fprintf(a.out, "company: %s\nphone:   %s\nemail:   %s\naddress: %s\nlogo:    %s\nfavicon: %s\n",
				st.CompanyName, st.Phone, st.Email, st.Address, st.Logo, st.Favicon)
			return nil
		},
	})

	var next models.SiteSettings
	set := &cobra.Command{
		Use:   "set",
		Short: "Change site settings; omitted flags keep their values",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _ := a.session.Store.SiteSettings()
			flags := cmd.Flags()
			if flags.Changed("phone") {
				st.Phone = next.Phone
			}
			if flags.Changed("email") {
				st.Email = next.Email
			}
			if flags.Changed("address") {
				st.Address = next.Address
			}
			if flags.Changed("company") {
				st.CompanyName = next.CompanyName
			}
			if flags.Changed("logo") {
				st.Logo = next.Logo
			}
			if flags.Changed("favicon") {
				st.Favicon = next.Favicon
			}
			a.session.Store.SetSiteSettings(st)
			return nil
		},
	}
	set.Flags().StringVar(&next.Phone, "phone", "", "contact phone")
	set.Flags().StringVar(&next.Email, "email", "", "contact e-mail")
	set.Flags().StringVar(&next.Address, "address", "", "office address")
	set.Flags().StringVar(&next.CompanyName, "company", "", "company name")
	set.Flags().StringVar(&next.Logo, "logo", "", "logo URL")
	set.Flags().StringVar(&next.Favicon, "favicon", "", "favicon URL")
	cmd.AddCommand(set)

	return cmd
}
