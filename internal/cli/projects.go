package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"residence/server/internal/editor"
	"residence/server/internal/geometry"
	"residence/server/internal/models"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "projects", Short: "List, create and delete projects"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.table()
			fmt.Fprintln(w, "ID\tSLUG\tNAME\tFLOORS\tPLANS")
			for _, p := range a.session.Store.Projects() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", p.ID, p.Slug, p.Name, p.TotalFloors, len(p.Plans))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id-or-slug>",
		Short: "Show a project with its plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.session.Store.Project(args[0])
			if !ok {
				p, ok = a.session.Store.ProjectBySlug(args[0])
			}
			if !ok {
				return fmt.Errorf("%w: %s", editor.ErrProjectNotFound, args[0])
			}

			fmt.Fprintf(a.out, "id:       %s\nslug:     %s\nname:     %s\nlocation: %s\nfloors:   %d\n",
				p.ID, p.Slug, p.Name, p.Location, p.TotalFloors)
			fmt.Fprintf(a.out, "promos: %d  pins: %d  milestones: %d\n\n", len(p.Promos), len(p.Infrastructure), len(p.Timeline))

			w := a.table()
			fmt.Fprintln(w, "PLAN\tROOMS\tAREA\tFLOOR\tNUMBER\tPRICE\tSTATUS")
			for _, plan := range p.Plans {
				rooms := strconv.Itoa(plan.Rooms)
				if plan.IsStudio() {
					rooms = "studio"
				}
				floor := "-"
				if plan.Floor != nil {
					floor = strconv.Itoa(*plan.Floor)
				}
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\t%s\t%s\n",
					plan.ID, rooms, plan.Area, floor, plan.Number, plan.Price, plan.EffectiveStatus())
			}
			return w.Flush()
		},
	})

	var name, slug, location string
	var floors int
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a project with default content",
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.NewProject(a.session.Store)
			ed.Edit(func(p *models.Project) {
				if name != "" {
					p.Name = name
				}
				if slug != "" {
					p.Slug = slug
				}
				if location != "" {
					p.Location = location
				}
				if floors > 0 {
					p.TotalFloors = floors
				}
			})
			ed.Save()
			fmt.Fprintln(a.out, ed.Draft().ID)
			return nil
		},
	}
	newCmd.Flags().StringVar(&name, "name", "", "project name")
	newCmd.Flags().StringVar(&slug, "slug", "", "URL slug")
	newCmd.Flags().StringVar(&location, "location", "", "address")
	newCmd.Flags().IntVar(&floors, "floors", 0, "total floors")
	cmd.AddCommand(newCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Store.DeleteProject(args[0])
			return nil
		},
	})

	return cmd
}

// editProject opens id, applies fn and saves the draft
func (a *App) editProject(id string, fn func(ed *editor.ProjectEditor) error) error {
	ed, err := editor.Open(a.session.Store, id)
	if err != nil {
		return err
	}
	if err := fn(ed); err != nil {
		return err
	}
	ed.Save()
	return nil
}

func (a *App) plansCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "plans", Short: "Manage apartment plans of a project"}

	var plan models.ApartmentPlan
	var floor int
	var status string
	add := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add an apartment plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("floor") {
				plan.Floor = &floor
			}
			if status != "" {
				plan.Status = models.PlanStatus(status)
				if !plan.Status.Valid() {
					return fmt.Errorf("unknown plan status %q", status)
				}
			}
			return a.editProject(args[0], func(ed *editor.ProjectEditor) error {
				plans := ed.Plans()
				fmt.Fprintln(a.out, plans.Add(plan))
				if plan.Floor != nil && (*plan.Floor < 1 || *plan.Floor > ed.Draft().TotalFloors) {
					fmt.Fprintf(a.out, "note: floor %d is outside %s\n", *plan.Floor, plans.FloorRange())
				}
				return nil
			})
		},
	}
	add.Flags().IntVar(&plan.Rooms, "rooms", 0, "number of rooms, 0 for a studio")
	add.Flags().Float64Var(&plan.Area, "area", 0, "area in square metres")
	add.Flags().StringVar(&plan.Price, "price", "", "price as displayed")
	add.Flags().StringVar(&plan.Image, "image", "", "plan image URL")
	add.Flags().IntVar(&floor, "floor", 0, "floor")
	add.Flags().StringVar(&plan.Number, "number", "", "apartment number")
	add.Flags().StringVar(&status, "status", "", "available, reserved or sold")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "status <project-id> <plan-id> <available|reserved|sold>",
		Short: "Change the sales status of a plan",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(args[0], func(ed *editor.ProjectEditor) error {
				return ed.Plans().SetStatus(args[1], models.PlanStatus(args[2]))
			})
		},
	})

	return cmd
}

func (a *App) promosCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "promos", Short: "Manage promo offers of a project"}

	var promo models.PromoOffer
	add := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a promo offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(args[0], func(ed *editor.ProjectEditor) error {
				fmt.Fprintln(a.out, ed.Promos().Add(promo))
				return nil
			})
		},
	}
	add.Flags().StringVar(&promo.Title, "title", "", "title")
	add.Flags().StringVar(&promo.Description, "description", "", "description")
	add.Flags().StringVar(&promo.Image, "image", "", "image URL")
	add.Flags().StringVar(&promo.Discount, "discount", "", "discount label")
	cmd.AddCommand(add)

	return cmd
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

func (a *App) pinsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pins", Short: "Manage infrastructure pins of a project"}

	var kind, name, at, click, box string
	add := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a pin by percent position or by a click on the rendered image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(args[0], func(ed *editor.ProjectEditor) error {
				infra := ed.Infrastructure()

				var pos orb.Point
				switch {
				case click != "":
					c, err := parseFloats(click, 2)
					if err != nil {
						return err
					}
					b, err := parseFloats(box, 4)
					if err != nil {
						return fmt.Errorf("--box: %w", err)
					}
					pos, err = infra.PlacePin(orb.Point{c[0], c[1]}, orb.Bound{Min: orb.Point{b[0], b[1]}, Max: orb.Point{b[2], b[3]}})
					if err != nil {
						return err
					}
				case at != "":
					p, err := parseFloats(at, 2)
					if err != nil {
						return err
					}
					pos = orb.Point{p[0], p[1]}
				default:
					return fmt.Errorf("either --at or --click with --box is required")
				}

				id, err := infra.Add(models.InfrastructureType(kind), name, pos)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s at %.2f%%, %.2f%%\n", id, pos.X(), pos.Y())
				return nil
			})
		},
	}
	add.Flags().StringVar(&kind, "type", string(models.InfraSchool), "school, kindergarten, shop, pharmacy, gym or dentist")
	add.Flags().StringVar(&name, "name", "", "label")
	add.Flags().StringVar(&at, "at", "", "position in image percent: x,y")
	add.Flags().StringVar(&click, "click", "", "click position in pixels: x,y")
	add.Flags().StringVar(&box, "box", "", "rendered image box in pixels: minX,minY,maxX,maxY")
	cmd.AddCommand(add)

	var asGeoJSON bool
	var listBox string
	list := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List pins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.session.Store.Project(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", editor.ErrProjectNotFound, args[0])
			}
			if asGeoJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(geometry.PinsFeatureCollection(p.Infrastructure))
			}
			if listBox == "" {
				w := a.table()
				fmt.Fprintln(w, "ID\tTYPE\tNAME\tX\tY")
				for _, item := range p.Infrastructure {
					fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\n", item.ID, item.Type, item.Name, item.X, item.Y)
				}
				return w.Flush()
			}

			b, err := parseFloats(listBox, 4)
			if err != nil {
				return fmt.Errorf("--box: %w", err)
			}
			bound := orb.Bound{Min: orb.Point{b[0], b[1]}, Max: orb.Point{b[2], b[3]}}
			w := a.table()
			fmt.Fprintln(w, "ID\tTYPE\tNAME\tX\tY\tPX\tPY")
			for _, item := range p.Infrastructure {
				px := geometry.PixelPosition(orb.Point{item.X, item.Y}, bound)
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.0f\t%.0f\n", item.ID, item.Type, item.Name, item.X, item.Y, px.X(), px.Y())
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&asGeoJSON, "geojson", false, "print as a GeoJSON feature collection")
	list.Flags().StringVar(&listBox, "box", "", "also print pixel positions inside this image box: minX,minY,maxX,maxY")
	cmd.AddCommand(list)

	return cmd
}

func (a *App) timelineCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "timeline", Short: "Manage construction milestones of a project"}

	var item models.TimelineItem
	add := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(args[0], func(ed *editor.ProjectEditor) error {
				id, err := ed.Timeline().Add(item)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, id)
				return nil
			})
		},
	}
	add.Flags().StringVar(&item.Date, "date", "", "date as YYYY-MM-DD")
	add.Flags().StringVar(&item.Title, "title", "", "title")
	add.Flags().StringVar(&item.Description, "description", "", "description")
	cmd.AddCommand(add)

	return cmd
}
