package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/automation"
	"github.com/san-kum/rigposer/internal/config"
	"github.com/san-kum/rigposer/internal/editor"
	"github.com/san-kum/rigposer/internal/export"
	"github.com/san-kum/rigposer/internal/gui"
	"github.com/san-kum/rigposer/internal/pick"
	"github.com/san-kum/rigposer/internal/prefs"
	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/storage"
	"github.com/san-kum/rigposer/internal/tui"
	"github.com/san-kum/rigposer/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	// sampling
	frame  int
	preset string
	step   int
	// output
	outFile string
	format  string
	part    string
	// terminal player
	plain     bool
	frameRate int
	theme     string
	playFor   time.Duration
	// svg
	rigView bool
	// pick
	pickX float64
	pickY float64
)

// main registers the rigposer commands. With no subcommand it opens the
// GUI editor.
func main() {
	rootCmd := &cobra.Command{
		Use:          "rigposer",
		Short:        "robot rig poser and keyframe animator",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "animation library directory")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the 3D editor",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "terminal editor, or a plain player with --plain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&plain, "plain", false, "play the file without the interactive editor")
	tuiCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	tuiCmd.Flags().StringVar(&theme, "theme", "", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	tuiCmd.Flags().Int("width", 60, "player width in cells (--plain)")
	tuiCmd.Flags().Int("height", 20, "player height in cells (--plain)")
	tuiCmd.Flags().DurationVar(&playFor, "for", 0, "stop the player after this long (--plain)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved animations",
		Args:  cobra.NoArgs,
		RunE:  listFiles,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "show animation metadata and keyframes",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectFile,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample [file]",
		Short: "print the interpolated angles at a frame",
		Args:  cobra.ExactArgs(1),
		RunE:  sampleFrame,
	}
	sampleCmd.Flags().IntVar(&frame, "frame", 0, "frame to sample")
	sampleCmd.Flags().StringVar(&preset, "preset", "", "pose used for parts without keyframes")

	plotCmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "plot joint curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCurves,
	}
	plotCmd.Flags().StringVar(&part, "part", rig.PartTorso, "body part")
	plotCmd.Flags().StringSlice("joint", nil, "joint names or ids (overrides --part)")
	plotCmd.Flags().Int("width", 0, "plot width")
	plotCmd.Flags().Int("height", 0, "plot height")

	bakeCmd := &cobra.Command{
		Use:   "bake [file]",
		Short: "sample every frame to CSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  bakeFile,
	}
	bakeCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	bakeCmd.Flags().IntVar(&step, "step", 1, "frame step")
	bakeCmd.Flags().StringVar(&format, "format", "csv", "csv or json")

	svgCmd := &cobra.Command{
		Use:   "svg [file]",
		Short: "render joint curves or the rig to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgFile,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	svgCmd.Flags().StringSlice("joint", []string{"torso_yaw"}, "joint names or ids")
	svgCmd.Flags().IntVar(&step, "step", 1, "frame step")
	svgCmd.Flags().Int("width", 800, "image width (curves) or cells (--rig)")
	svgCmd.Flags().Int("height", 300, "image height (curves) or cells (--rig)")
	svgCmd.Flags().BoolVar(&rigView, "rig", false, "draw the rig wireframe at --frame instead of curves")
	svgCmd.Flags().IntVar(&frame, "frame", 0, "frame to draw (--rig)")

	migrateCmd := &cobra.Command{
		Use:   "migrate [in] [out]",
		Short: "upgrade a version 1 animation to the current format",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  migrateFile,
	}

	jointsCmd := &cobra.Command{
		Use:   "joints",
		Short: "list joints, limits and body parts",
		Args:  cobra.NoArgs,
		RunE:  listJoints,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list pose presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "hit test a screen position against the default camera",
		Args:  cobra.NoArgs,
		RunE:  pickPart,
	}
	pickCmd.Flags().Float64Var(&pickX, "x", 400, "screen x")
	pickCmd.Flags().Float64Var(&pickY, "y", 300, "screen y")
	pickCmd.Flags().Int("width", 800, "viewport width")
	pickCmd.Flags().Int("height", 600, "viewport height")
	pickCmd.Flags().StringVar(&preset, "preset", "", "pose preset")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "author an animation from a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, listCmd, inspectCmd, sampleCmd, plotCmd, bakeCmd, svgCmd, migrateCmd, jointsCmd, presetsCmd, pickCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config and applies --data on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.Storage.Dir = dataDir
	}
	return cfg, nil
}

func openPrefs(cfg *config.Config) *prefs.Manager {
	if !cfg.Prefs.Enabled {
		m, _ := prefs.NewManager(nil)
		return m
	}
	return prefs.Open(cfg.Prefs.AppName)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gui.Run(editor.New(cfg), openPrefs(cfg))
	return nil
}

// openSession loads name into a new session. A name that is an existing
// path is opened from its own directory instead of the library.
func openSession(cfg *config.Config, name string) (*editor.Session, error) {
	s := editor.New(cfg)
	if name == "" {
		return s, nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		s.Library = storage.New(filepath.Dir(name))
		name = filepath.Base(name)
	}
	if err := s.Load(name); err != nil {
		return nil, err
	}
	return s, nil
}

// loadTimeline reads a file from disk or the library into a timeline.
// Version 1 files are upgraded on the fly.
func loadTimeline(cfg *config.Config, name string) (*anim.Timeline, error) {
	s, err := openSession(cfg, name)
	if err != nil {
		return nil, err
	}
	return s.Timeline, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	s, err := openSession(cfg, name)
	if err != nil {
		return err
	}

	if plain {
		if name == "" {
			return fmt.Errorf("--plain needs a file to play")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		width, height := flagSize(cmd)
		p := tui.NewPlayer(os.Stdout, s.Timeline, s.Camera, width, height, frameRate)
		if err := p.Run(ctx, playFor); err != nil && err != context.Canceled {
			return err
		}
		return nil
	}

	opts := tui.Options{
		FPS:        cfg.TUI.FPS,
		Theme:      cfg.TUI.Theme,
		PlotWidth:  cfg.TUI.PlotWidth,
		PlotHeight: cfg.TUI.PlotHeight,
		Fovy:       cfg.Camera.Fovy,
	}
	if cmd.Flags().Changed("fps") {
		opts.FPS = frameRate
	}
	if cmd.Flags().Changed("theme") {
		opts.Theme = theme
	}
	return tui.Run(s, opts)
}

func listFiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib := storage.New(cfg.Storage.Dir)
	files, err := lib.List()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("no animations in %s\n", lib.Dir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tFPS\tFRAMES\tPARTS\tKEYS\tMODIFIED")
	for _, f := range files {
		version := f.Version
		if f.Legacy {
			version = "1 (legacy)"
		}
		if version == "" {
			version = "?"
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%d\t%d\t%s\n",
			f.Name, version, f.FrameRate, f.MaxFrame, f.Parts, f.Keyframes,
			f.Modified.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func inspectFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tl, err := loadTimeline(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("file:       %s\n", args[0])
	fmt.Printf("frame rate: %g fps\n", tl.FrameRate())
	fmt.Printf("max frame:  %d (%.2fs)\n", tl.MaxFrame(), tl.Duration())
	fmt.Printf("keyframes:  %d\n", tl.KeyframeCount())

	groups := tl.GroupByFrame()
	if len(groups) == 0 {
		return nil
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tTIME\tPARTS")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%.2fs\t%s\n", g.Frame, g.Time, strings.Join(g.Parts, ", "))
	}
	return w.Flush()
}

func sampleFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tl, err := loadTimeline(cfg, args[0])
	if err != nil {
		return err
	}
	base := rig.NewAngles()
	if preset != "" {
		if base, err = cfg.Preset(preset); err != nil {
			return err
		}
	}

	angles := rig.NewAngles()
	angles.Assign(tl.Interpolate(frame, base))

	fmt.Printf("frame %d (%.2fs)\n", frame, tl.TimeOf(frame))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tJOINT\tANGLE\tMIN\tMAX")
	for _, j := range rig.Joints() {
		v := angles.At(j.ID)
		mark := ""
		if j.AtLimit(v) {
			mark = " *"
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f%s\t%g\t%g\n", j.ID, j.Name, v, mark, j.Min, j.Max)
	}
	return w.Flush()
}

func flagSize(cmd *cobra.Command) (int, int) {
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	return w, h
}

// parseJoints resolves joint names or numeric ids.
func parseJoints(names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, n := range names {
		if id, err := strconv.Atoi(n); err == nil {
			if _, ok := rig.JointByID(id); !ok {
				return nil, fmt.Errorf("unknown joint id: %d", id)
			}
			ids = append(ids, id)
			continue
		}
		j, ok := rig.JointByName(n)
		if !ok {
			return nil, fmt.Errorf("unknown joint: %s", n)
		}
		ids = append(ids, j.ID)
	}
	return ids, nil
}

func plotCurves(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tl, err := loadTimeline(cfg, args[0])
	if err != nil {
		return err
	}
	w, h := cfg.TUI.PlotWidth, cfg.TUI.PlotHeight
	if fw, fh := flagSize(cmd); fw > 0 && fh > 0 {
		w, h = fw, fh
	}

	if joints, _ := cmd.Flags().GetStringSlice("joint"); len(joints) > 0 {
		ids, err := parseJoints(joints)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(viz.PlotJoint(tl, id, w, h))
			fmt.Println()
		}
		return nil
	}
	out, err := viz.PlotPart(tl, part, w, h)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// output opens --out, or stdout when it is unset.
func output() (*os.File, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func bakeFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tl, err := loadTimeline(cfg, args[0])
	if err != nil {
		return err
	}
	f, closeFn, err := output()
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		err = export.WriteCSV(f, export.Bake(tl, step))
	case "json":
		err = export.WriteJSON(f, tl, step)
	default:
		err = fmt.Errorf("unknown format: %s (csv, json)", format)
	}
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err == nil && outFile != "" {
		fmt.Printf("baked %s to %s\n", args[0], outFile)
	}
	return err
}

func svgFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSession(cfg, args[0])
	if err != nil {
		return err
	}

	width, height := flagSize(cmd)
	var doc string
	if rigView {
		cw, ch := width, height
		if !cmd.Flags().Changed("width") {
			cw = 60
		}
		if !cmd.Flags().Changed("height") {
			ch = 24
		}
		s.Seek(frame)
		canvas := viz.NewCanvas(cw, ch)
		viz.RenderRig(canvas, s.Scene, s.Pose(), s.Camera.View(), float32(cfg.Camera.Fovy), "")
		doc = export.CanvasToSVG(canvas, 4)
	} else {
		joints, _ := cmd.Flags().GetStringSlice("joint")
		ids, err := parseJoints(joints)
		if err != nil {
			return err
		}
		if doc, err = export.CurvesToSVG(export.Bake(s.Timeline, step), ids, width, height); err != nil {
			return err
		}
	}

	f, closeFn, err := output()
	if err != nil {
		return err
	}
	if _, err := f.WriteString(doc); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func migrateFile(cmd *cobra.Command, args []string) error {
	in := args[0]
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if !anim.IsLegacy(data) {
		return fmt.Errorf("%s is not a version 1 animation", in)
	}
	doc, err := anim.UpgradeLegacy(data)
	if err != nil {
		return err
	}
	out, err := anim.Encode(doc)
	if err != nil {
		return err
	}

	dst := strings.TrimSuffix(in, filepath.Ext(in)) + ".v2.json"
	if len(args) > 1 {
		dst = args[1]
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return err
	}
	fmt.Printf("migrated %s -> %s\n", in, dst)
	return nil
}

func listJoints(cmd *cobra.Command, args []string) error {
	owner := map[int]string{}
	for _, p := range rig.Parts() {
		for _, id := range p.Joints {
			owner[id] = p.Name
		}
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLABEL\tMIN\tMAX\tPART")
	for _, j := range rig.Joints() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%g\t%g\t%s\n", j.ID, j.Name, j.Label, j.Min, j.Max, owner[j.ID])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Println("presets:")
	for _, name := range cfg.PresetNames() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func pickPart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	angles := rig.NewAngles()
	if preset != "" {
		if angles, err = cfg.Preset(preset); err != nil {
			return err
		}
	}

	width, height := flagSize(cmd)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bad viewport size %dx%d", width, height)
	}
	s := editor.New(cfg)
	r := pick.NewResolver(pick.NewSoftwareBackend())
	if err := r.Resize(width, height); err != nil {
		return err
	}
	defer r.Release()

	proj := rig.Perspective(float32(cfg.Camera.Fovy), float32(width)/float32(height), 0.05, 100)
	viewProj := proj.Mul(s.Camera.View())
	hit := r.Resolve(s.Scene, rig.BuildPose(angles), viewProj, pick.Uniform(width, height), pickX, pickY)
	if hit == "" {
		fmt.Println("miss")
		return nil
	}
	bp, _ := rig.PartByName(hit)
	fmt.Printf("%s (%s) joints %v\n", hit, bp.Label, bp.Joints)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := editor.New(cfg)
	if err := automation.RunScenario(ctx, sc, s); err != nil {
		return err
	}
	tl := s.Timeline
	fmt.Printf("scenario %s: %d keyframes over %d frames (%.2fs)\n", sc.Name, tl.KeyframeCount(), tl.MaxFrame(), tl.Duration())
	if s.File() != "" {
		fmt.Printf("saved: %s\n", s.File())
	}
	return nil
}
