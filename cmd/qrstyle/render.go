package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/qrstyle/internal/config"
	"github.com/ironsheep/qrstyle/internal/qr"
	"github.com/ironsheep/qrstyle/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a styled QR code to an image file",
	Example: `  qrstyle render --content https://example.com --fg "#1A237E" --out code.png
  qrstyle render --type geo --lat 48.85 --lng 2.35 --gradient radial \
      --fg "#004D40" --secondary "#1B5E20" --logo logo.svg --level H --out map.png`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("content", "", "Text to encode (overrides the payload flags)")
	addPayloadFlags(renderCmd)

	f.String("style-file", "", "YAML style file; style flags override it")
	f.String("fg", "", "Module color as #RRGGBB (default #000000)")
	f.String("secondary", "", "Gradient end color as #RRGGBB")
	f.String("gradient", "", "Gradient mode (none, linear, radial, angular)")
	f.Bool("transparent", false, "Make the light background nearly transparent")
	f.Int("bg-alpha", -1, "Alpha (0-255) for transparent background pixels (default 1)")
	f.String("blend", "", "Gradient blend space (rgb, lab, hcl)")

	f.String("logo", "", "Logo image placed at the centre")
	f.Int("module-size", 0, "Pixels per module (default 10, or QRSTYLE_MODULE_SIZE)")
	f.String("level", "M", "Error correction level (L, M, Q, H)")
	f.String("module-style", "square", "Data module shape (square, circle)")
	f.String("backend", "", "Encoder backend (skip2, boombuler)")
	f.Bool("no-quiet-zone", false, "Omit the 4-module border")
	f.String("format", "png", "Output format (png, jpeg)")
	f.Bool("parallel", false, "Recolor rows in parallel (or QRSTYLE_PARALLEL)")
	f.Bool("verify", true, "Scan the result and warn if it does not decode")
	f.StringP("out", "o", "", "Output image file; the format's extension is added if it has none")
	renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

// styleFromFlags loads --style-file, if any, and lays the style flags the
// user actually set over it.
func styleFromFlags(cmd *cobra.Command) (config.StyleSpec, error) {
	var spec config.StyleSpec
	if path, _ := cmd.Flags().GetString("style-file"); path != "" {
		var err error
		if spec, err = config.LoadStyleFile(path); err != nil {
			return spec, err
		}
	}

	var override config.StyleSpec
	override.Foreground, _ = cmd.Flags().GetString("fg")
	override.Secondary, _ = cmd.Flags().GetString("secondary")
	override.Gradient, _ = cmd.Flags().GetString("gradient")
	override.TransparentBackground, _ = cmd.Flags().GetBool("transparent")
	override.BlendSpace, _ = cmd.Flags().GetString("blend")
	if cmd.Flags().Changed("bg-alpha") {
		a, _ := cmd.Flags().GetInt("bg-alpha")
		override.BackgroundAlpha = &a
	}
	return spec.Merge(override), nil
}

func contentFromFlags(cmd *cobra.Command) (string, error) {
	if content, _ := cmd.Flags().GetString("content"); content != "" {
		return content, nil
	}
	p, err := payloadFromFlags(cmd)
	if err != nil {
		return "", err
	}
	return p.Content()
}

func runRender(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("out")
	logoPath, _ := cmd.Flags().GetString("logo")
	levelStr, _ := cmd.Flags().GetString("level")
	moduleStyleStr, _ := cmd.Flags().GetString("module-style")
	moduleSize, _ := cmd.Flags().GetInt("module-size")
	backend, _ := cmd.Flags().GetString("backend")
	noQuiet, _ := cmd.Flags().GetBool("no-quiet-zone")
	format, _ := cmd.Flags().GetString("format")
	parallel, _ := cmd.Flags().GetBool("parallel")
	verify, _ := cmd.Flags().GetBool("verify")

	content, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}

	spec, err := styleFromFlags(cmd)
	if err != nil {
		return err
	}
	style, err := spec.StyleConfig()
	if err != nil {
		return err
	}

	level, err := qr.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	moduleStyle, err := qr.ParseModuleStyle(moduleStyleStr)
	if err != nil {
		return err
	}

	if moduleSize == 0 {
		moduleSize = env.ModuleSize
	}
	if backend == "" {
		backend = env.Backend
	}
	if !cmd.Flags().Changed("parallel") {
		parallel = env.Parallel
	}

	opts := render.Options{
		Content: content,
		Style:   style,
		Backend: backend,
		QR: qr.EncodeOptions{
			Level:       level,
			ModuleSize:  moduleSize,
			QuietZone:   !noQuiet,
			ModuleStyle: moduleStyle,
		},
		Format: format,
		Verify: verify,
	}
	if logoPath != "" {
		if opts.Logo, err = os.ReadFile(logoPath); err != nil {
			return fmt.Errorf("reading logo: %w", err)
		}
	}

	log := logrus.WithField("component", "cli")
	result, err := render.NewDefault(parallel, log).Run(opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if result.LogoErr != nil {
		log.WithError(result.LogoErr).WithField("logo", logoPath).Warn("logo skipped")
	}
	if verify && !result.Verified {
		entry := log.WithField("decoded", result.Decoded)
		if result.ScanErr != nil {
			entry = entry.WithError(result.ScanErr)
		}
		entry.Warn("rendered code did not scan back to its content")
	}

	if filepath.Ext(outputPath) == "" {
		outputPath += result.Extension
	}
	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %dx%d %s\n", result.Width, result.Height, result.MimeType)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s (%d bytes)\n", outputPath, len(result.Data))
	return nil
}
