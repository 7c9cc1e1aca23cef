package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/santanalab/pptool/artifact"
	"github.com/santanalab/pptool/config"
	"github.com/santanalab/pptool/coord"
	"github.com/santanalab/pptool/toolpath"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/zerr"
)

// CLI is the pptool command line.
type CLI struct {
	root *cobra.Command

	cfgPath string
	outDir  string
	cfg     config.Config
}

func newCLI() *CLI {
	c := &CLI{}
	c.root = &cobra.Command{
		Use:           "pptool",
		Short:         "Generate bioprinter parameterization test toolpaths",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.cfgPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			c.cfg = *cfg
			if cmd.Flags().Changed("out") {
				c.cfg.Output.Dir = c.outDir
			}
			return nil
		},
	}
	c.root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", config.DefaultPath, "Path to configuration file")
	c.root.PersistentFlags().StringVarP(&c.outDir, "out", "o", "", "Output directory (overrides output.dir)")

	c.root.AddCommand(c.newLineCmd(), c.newCircleCmd(), c.newGradientCmd(), c.newServeCmd())
	return c
}

// Execute runs the command line with ctx.
func (c *CLI) Execute(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// SetArgs replaces os.Args[1:]. Used for testing.
func (c *CLI) SetArgs(args []string) { c.root.SetArgs(args) }

func startFlags(fs *pflag.FlagSet, p *coord.Point) {
	fs.Float64Var(&p.X, "x", p.X, "Start position X (mm)")
	fs.Float64Var(&p.Y, "y", p.Y, "Start position Y (mm)")
	fs.Float64Var(&p.Z, "z", p.Z, "Start position Z (mm)")
}

func required(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		_ = cmd.MarkFlagRequired(n)
	}
}

func (c *CLI) emit(kind artifact.Kind, seq toolpath.Sequence, err error) error {
	if errors.Is(err, toolpath.ErrInvalidParameter) {
		return err
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to generate toolpath"), "kind", string(kind))
	}
	res, err := newApp(c.cfg, c.cfg.Output.Dir).save(kind, seq)
	if err != nil {
		return err
	}
	log.Printf("Complete! wrote %s: %d blocks, %.3fmm travel, %.5f extruded, ~%s",
		res.File, res.Blocks, res.Travel, res.Extruded, res.Duration.Round(time.Millisecond))
	return nil
}

func (c *CLI) newLineCmd() *cobra.Command {
	req := newLineRequest()
	var axis string
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Line of set length, flow rate and movement rate",
		Long: `Produces a line of set length, flow rate and movement rate.
The axis sets the positive direction of movement from the start position.
Serves as a basic test for combined movement and extrusion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Axis = coord.Axis(axis)
			seq, err := newApp(c.cfg, c.cfg.Output.Dir).line(req)
			return c.emit(artifact.Line, seq, err)
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&req.Length, "length", 0, "Line length (mm)")
	fs.Float64Var(&req.ExtrusionRate, "extrude-rate", 0, "Extrusion rate (mm/s)")
	fs.Float64Var(&req.MoveRate, "move-rate", 0, "Movement rate (mm/s)")
	fs.StringVar(&axis, "axis", "X", "Movement axis (X or Y)")
	startFlags(fs, &req.Start)
	required(cmd, "length", "extrude-rate", "move-rate")
	return cmd
}

func (c *CLI) newCircleCmd() *cobra.Command {
	req := newCircleRequest()
	cmd := &cobra.Command{
		Use:   "circle",
		Short: "Circle of set radius, flow rate and movement rate",
		Long: `Produces a circle of set radius, flow rate and movement rate that
starts and ends at the start position. Tests shape-specific movement.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seq, err := newApp(c.cfg, c.cfg.Output.Dir).circle(req)
			return c.emit(artifact.Circle, seq, err)
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&req.Radius, "radius", 0, "Circle radius (mm)")
	fs.Float64Var(&req.ExtrusionRate, "extrude-rate", 0, "Extrusion rate (mm/s)")
	fs.Float64Var(&req.MoveRate, "move-rate", 0, "Movement rate (mm/s)")
	startFlags(fs, &req.Start)
	required(cmd, "radius", "extrude-rate", "move-rate")
	return cmd
}

func (c *CLI) newGradientCmd() *cobra.Command {
	req := newGradientRequest()
	var axis, style string
	cmd := &cobra.Command{
		Use:   "gradient",
		Short: "Line where flow rate or movement rate steps between two values",
		Long: `Produces a line of set length where either flow rate or movement rate
steps from an initial to a final value over a number of divisions.

  speed   constant movement rate, flow rate varies
  flow    constant flow rate, movement rate varies
  volume  movement rate varies, every segment extrudes the same volume`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := toolpath.ParseMode(style)
			if err != nil {
				return err
			}
			req.Axis = coord.Axis(axis)
			req.Mode = m
			seq, err := newApp(c.cfg, c.cfg.Output.Dir).gradient(req)
			return c.emit(artifact.Gradient, seq, err)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&req.Steps, "steps", 0, "Total number of gradient steps")
	fs.Float64Var(&req.Length, "length", 0, "Line length (mm)")
	fs.Float64Var(&req.Initial, "initial", 0, "Initial value (mm/s)")
	fs.Float64Var(&req.Final, "final", 0, "Final value (mm/s)")
	fs.Float64Var(&req.Constant, "constant", 0, "Constant value (mm/s)")
	fs.StringVar(&style, "style", "speed", "Value held constant: speed, flow or volume")
	fs.StringVar(&axis, "axis", "X", "Movement axis (X or Y)")
	startFlags(fs, &req.Start)
	required(cmd, "steps", "length", "initial", "final", "constant")
	return cmd
}

func (c *CLI) newServeCmd() *cobra.Command {
	var addr, dir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("dir") {
				dir = c.cfg.Server.Dir
			}
			api := newAPI(newApp(c.cfg, dir))

			log.Println("Listening on", addr)
			err := http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "*")
				log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
				api.ServeHTTP(w, req)
			}))
			return zerr.With(zerr.Wrap(err, "server stopped"), "addr", addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9091", "Address to bind the server to")
	cmd.Flags().StringVar(&dir, "dir", "./data", "Data directory to write artifacts to")
	return cmd
}
