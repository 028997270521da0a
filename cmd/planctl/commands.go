package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"floorplan/internal/common/logging"
	"floorplan/internal/planner/importer"
	"floorplan/internal/planner/models"
	"floorplan/internal/planner/render"
	"floorplan/internal/planner/scene3d"
	"floorplan/internal/planner/walls"
)

// ============================================================
// import
// ============================================================

type importOpts struct {
	output  string
	scaleMM float64
	gridMM  float64
}

func newImportCmd(root *rootOpts) *cobra.Command {
	opts := importOpts{}

	cmd := &cobra.Command{
		Use:   "import <plan.svg>",
		Short: "Convert an SVG drawing into plan JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())

			tol, err := root.tolerances()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			im := importer.New(importer.Options{
				ScaleMM:    opts.scaleMM,
				GridSizeMM: opts.gridMM,
				SnapToGrid: opts.gridMM > 0,
				Tolerances: tol,
			})
			plan, report, err := im.Import(f)
			if err != nil {
				return err
			}

			logger.Info("imported", "plan", plan.ID, "walls", report.Walls, "openings", report.Openings)
			for _, id := range report.UnattachedOpenings {
				logger.Warn("opening not attached to any wall", "id", id)
			}

			return withOutput(cmd, opts.output, func(w io.Writer) error {
				return writeJSON(w, plan)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&opts.scaleMM, "scale", importer.DefaultScaleMM, "millimetres per SVG unit")
	cmd.Flags().Float64Var(&opts.gridMM, "grid", 0, "snap wall endpoints to this grid in mm (0 disables)")

	return cmd
}

// ============================================================
// groups
// ============================================================

func newGroupsCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "groups <plan.json>",
		Short: "Print connected wall groups, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tol, err := root.tolerances()
			if err != nil {
				return err
			}
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, group := range walls.GroupIDs(plan.Walls, tol.Connect) {
				fmt.Fprintln(out, strings.Join(group, " "))
			}
			return nil
		},
	}
}

// ============================================================
// outline
// ============================================================

type outlineOpts struct {
	output   string
	selected []string
	width    int
	height   int
}

func newOutlineCmd(root *rootOpts) *cobra.Command {
	opts := outlineOpts{}

	cmd := &cobra.Command{
		Use:   "outline <plan.json>",
		Short: "Render merged wall outlines and openings as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tol, err := root.tolerances()
			if err != nil {
				return err
			}
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}

			r := render.NewRenderer(render.Options{
				Width:           opts.width,
				Height:          opts.height,
				Padding:         render.DefaultPadding,
				SelectedWallIDs: opts.selected,
				Tolerances:      tol,
			})
			return withOutput(cmd, opts.output, func(w io.Writer) error {
				return r.Render(w, plan)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVar(&opts.selected, "select", nil, "wall ids to highlight")
	cmd.Flags().IntVar(&opts.width, "width", render.DefaultWidth, "canvas width in px")
	cmd.Flags().IntVar(&opts.height, "height", render.DefaultHeight, "canvas height in px")

	return cmd
}

// ============================================================
// scene
// ============================================================

func newSceneCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scene <plan.json>",
		Short: "Project the plan into 3D scene transforms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}
			return withOutput(cmd, output, func(w io.Writer) error {
				return writeJSON(w, scene3d.ProjectPlan(plan))
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// ============================================================
// Helpers
// ============================================================

func readPlan(path string) (models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Plan{}, fmt.Errorf("read %s: %w", path, err)
	}
	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return models.Plan{}, fmt.Errorf("decode plan %s: %w", path, err)
	}
	return plan, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withOutput пишет в файл path или в stdout команды, если path пуст.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	logging.FromContext(cmd.Context()).Debug("wrote output", "path", path)
	return nil
}
