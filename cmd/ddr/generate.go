package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/config"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/extractor"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/merge"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/narrative"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/output"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/structurer"
)

type generateCmd struct {
	inspection string
	thermal    string
	outPath    string
	apiKey     string
	model      string
	noValidate bool
}

func newGenerateCmd() *cobra.Command {
	gc := &generateCmd{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a DDR from an inspection report and a thermal survey",
		RunE:  gc.run,
	}

	cmd.Flags().StringVarP(&gc.inspection, "inspection", "i", "", "Path to the inspection report")
	cmd.Flags().StringVarP(&gc.thermal, "thermal", "t", "", "Path to the thermal images report")
	cmd.Flags().StringVarP(&gc.outPath, "output", "o", "", "Output file path (default: auto-generated in the output folder)")
	cmd.Flags().StringVar(&gc.apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	cmd.Flags().StringVar(&gc.model, "model", "", "Gemini model override")
	cmd.Flags().BoolVar(&gc.noValidate, "no-validate", false, "Skip the validation pass")

	_ = cmd.MarkFlagRequired("inspection")
	_ = cmd.MarkFlagRequired("thermal")

	return cmd
}

func (gc *generateCmd) run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if gc.apiKey != "" {
		cfg.GeminiAPIKey = gc.apiKey
	}
	if gc.model != "" {
		cfg.GeminiModel = gc.model
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("no API key provided: set GEMINI_API_KEY or use --api-key")
	}

	structCfg := structurer.Config{
		MaxAreaDescChars:   cfg.MaxAreaDescChars,
		MaxRawContentChars: cfg.MaxRawContentChars,
		MaxChecklistChars:  cfg.MaxChecklistChars,
		SiteFallbackChars:  cfg.SiteFallbackChars,
		DegradedRawChars:   cfg.DegradedRawChars,
	}
	mergeCfg := merge.Config{
		ThermalStride:      cfg.ThermalImagesPerArea,
		MaxRawContentChars: cfg.MaxRawContentChars,
	}

	fmt.Println("[1/4] Extracting text from documents...")
	inspText, err := extractor.ExtractFile(gc.inspection)
	if err != nil {
		return fmt.Errorf("inspection report: %w", err)
	}
	insp := structurer.StructureInspection(inspText, structCfg)
	fmt.Printf("  Inspection report: %d impacted areas found\n", len(insp.Areas))

	var therm structurer.ThermalData
	thermText, err := extractor.ExtractFile(gc.thermal)
	if err != nil {
		fmt.Printf("  WARNING: thermal report unreadable (%v), continuing without it\n", err)
	} else {
		therm = structurer.StructureThermal(thermText)
	}
	fmt.Printf("  Thermal report: %d thermal readings found\n", len(therm.Readings))

	fmt.Println("\n[2/4] Processing and merging data...")
	merged := merge.Merge(insp, therm, mergeCfg)
	formatted := merge.FormatForLLM(merged)

	if len(merged.Conflicts) > 0 {
		fmt.Printf("  %d conflict(s) detected\n", len(merged.Conflicts))
		for _, c := range merged.Conflicts {
			fmt.Printf("    - %s\n", c.Detail)
		}
	}
	if len(merged.MissingInfo) > 0 {
		fmt.Printf("  %d piece(s) of missing info noted\n", len(merged.MissingInfo))
	}
	fmt.Printf("  Merged data: %d characters\n", len(formatted))

	fmt.Println("\n[3/4] Generating DDR report (this takes ~20-30 seconds)...")
	client := narrative.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerateRPM)
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	res, err := client.GenerateDDR(ctx, formatted, !gc.noValidate)
	if err != nil && res == nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	if err != nil {
		fmt.Printf("  WARNING: validation pass failed: %v\n", err)
	}
	fmt.Printf("  Report generated (%d chars, %.1fs)\n", res.Metadata.OutputChars, res.Metadata.GenerationSeconds)
	if res.Validation != "" {
		fmt.Printf("  Validation complete (%.1fs)\n", res.Metadata.ValidationSeconds)
	}

	fmt.Println("\n[4/4] Saving report...")
	now := time.Now()
	outPath := gc.outPath
	if outPath == "" {
		outPath = output.DefaultPath(cfg.OutputDir, now)
	}
	if err := output.Save(output.Markdown(res.Report, now), outPath); err != nil {
		return err
	}
	fmt.Printf("  Report saved to: %s\n", outPath)

	if res.Validation != "" {
		valPath := filepath.Join(filepath.Dir(outPath), "validation_results.txt")
		if err := os.WriteFile(valPath, []byte(res.Validation), 0o644); err != nil {
			return fmt.Errorf("write validation results: %w", err)
		}
		fmt.Printf("  Validation saved to: %s\n", valPath)
	}

	return nil
}
