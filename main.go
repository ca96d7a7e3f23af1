package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/GIP2000/Computer-Graphics/pkg/config"
	"github.com/GIP2000/Computer-Graphics/pkg/logging"
	"github.com/GIP2000/Computer-Graphics/pkg/output"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
	"github.com/GIP2000/Computer-Graphics/pkg/scene"
	"github.com/GIP2000/Computer-Graphics/web/server"
)

func main() {
	// Credentials for publishing may live in a local .env file
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "raytracer",
		Short:         "CPU path tracer for sphere scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRenderCmd(), newScenesCmd(), newServeCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PPM image",
		Long: `Render a builtin scene or a YAML scene file.

Settings come from flags, RAYTRACER_* environment variables and an optional
YAML config file, in that order of precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, cfg.Pretty, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runRender(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.String("scene", "random", "builtin scene name (see 'scenes')")
	flags.String("scene-file", "", "YAML scene description; overrides --scene")
	flags.StringP("output", "o", "image.ppm", "PPM output path")
	flags.String("png", "", "also write a PNG to this path")
	flags.String("thumbnail", "", "also write a thumbnail to this path")
	flags.Int("thumb-size", 256, "longest edge of the thumbnail")
	flags.Int("width", 0, "image width (0 = scene default)")
	flags.Float64("aspect-ratio", 0, "width/height (0 = scene default)")
	flags.IntP("samples", "s", 0, "samples per pixel (0 = scene default)")
	flags.Int("max-depth", -1, "maximum bounce depth (-1 = scene default)")
	flags.Int64("seed", 0, "scene layout and sampling seed")
	flags.IntP("workers", "w", 0, "parallel workers (0 = CPU count)")
	flags.Int("tile-size", 32, "tile edge length in pixels")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("pretty", true, "human-readable console logs")
	flags.String("s3-bucket", "", "publish outputs to this S3 bucket")
	flags.String("s3-prefix", "", "key prefix for published outputs")

	// Flag names use dashes, config keys use underscores
	for _, name := range []string{"scene", "scene-file", "output", "png", "thumbnail", "thumb-size", "width",
		"aspect-ratio", "samples", "max-depth", "seed", "workers", "tile-size", "log-level", "pretty"} {
		mustBindPFlag(v, strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
	mustBindPFlag(v, "s3.bucket", flags.Lookup("s3-bucket"))
	mustBindPFlag(v, "s3.prefix", flags.Lookup("s3-prefix"))

	return cmd
}

// mustBindPFlag binds a config key to a flag; a failure is a programming error
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for config key %q is not defined", key))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %q: %v", flag.Name, err))
	}
}

func newScenesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List builtin scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenes(cmd.OutOrStdout(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "scenes", "directory scanned for YAML scene files")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		port     int
		dir      string
		logLevel string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logLevel, pretty, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return server.NewServer(port, dir, logger).Start(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&port, "port", "p", 8080, "port to listen on")
	flags.StringVar(&dir, "dir", "scenes", "directory scanned for YAML scene files")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&pretty, "pretty", true, "human-readable console logs")
	return cmd
}

func listScenes(w io.Writer, dir string) error {
	fmt.Fprintln(w, "Builtin scenes:")
	for _, info := range scene.Builtins() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}

	files, err := scene.ListSceneFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\nScene files in %s:\n", dir)
	for _, info := range files {
		fmt.Fprintf(w, "  %-14s %s\n", info.Name, info.FilePath)
	}
	return nil
}

// runRender builds the scene, renders it and writes every requested output
func runRender(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	selectedScene, err := cfg.LoadScene()
	if err != nil {
		return err
	}

	renderConfig := cfg.RenderConfig(selectedScene)
	camera, err := renderer.NewCamera(cfg.CameraConfig(selectedScene, renderConfig))
	if err != nil {
		return errors.Wrap(err, "camera")
	}

	raytracer, err := renderer.NewRaytracer(selectedScene.World, selectedScene.Materials, camera, renderConfig, logging.Printf(logger))
	if err != nil {
		return err
	}

	lastPercent := -1
	raytracer.SetProgressFunc(func(done, total int) {
		percent := done * 100 / total
		if percent/10 != lastPercent/10 {
			logger.Debug().Int("tiles", done).Int("total", total).Msgf("%d%%", percent)
			lastPercent = percent
		}
	})

	logger.Info().
		Str("scene", selectedScene.Name).
		Int("objects", selectedScene.GetPrimitiveCount()).
		Int("width", renderConfig.Width).
		Int("height", renderConfig.Height()).
		Int("samples", renderConfig.SamplesPerPixel).
		Int("max_depth", renderConfig.MaxDepth).
		Msg("Starting render")

	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Dur("duration", stats.Duration).
		Int("workers", stats.Workers).
		Float64("mean_luminance", stats.MeanLuminance).
		Float64("luminance_stddev", stats.LuminanceStdDev).
		Msg("Render complete")

	written, err := writeOutputs(cfg, frame)
	if err != nil {
		return err
	}
	for _, path := range written {
		logger.Info().Str("path", path).Msg("Saved")
	}

	return publishOutputs(ctx, cfg, selectedScene.Name, written, logger)
}

// writeOutputs writes the PPM and any optional images, returning their paths
func writeOutputs(cfg config.Config, frame *renderer.Frame) ([]string, error) {
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "create output directory %s", dir)
		}
	}
	if err := output.WritePPMFile(cfg.Output, frame); err != nil {
		return nil, err
	}
	written := []string{cfg.Output}

	if cfg.PNG != "" {
		if err := output.SavePNG(cfg.PNG, frame); err != nil {
			return written, err
		}
		written = append(written, cfg.PNG)
	}
	if cfg.Thumbnail != "" {
		if err := output.SaveThumbnail(cfg.Thumbnail, frame, cfg.ThumbSize); err != nil {
			return written, err
		}
		written = append(written, cfg.Thumbnail)
	}
	return written, nil
}

func publishOutputs(ctx context.Context, cfg config.Config, sceneName string, paths []string, logger zerolog.Logger) error {
	s3Config := cfg.S3Output()
	if !s3Config.Enabled() {
		return nil
	}

	publisher, err := output.NewS3Publisher(s3Config)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, path := range paths {
		ext := filepath.Ext(path)
		name := sceneName + "-" + strings.TrimSuffix(filepath.Base(path), ext)
		key := output.ObjectKey(publisher.Prefix(), name, ext, now)
		url, err := publisher.PublishFile(ctx, path, key)
		if err != nil {
			return err
		}
		logger.Info().Str("url", url).Msg("Published")
	}
	return nil
}
