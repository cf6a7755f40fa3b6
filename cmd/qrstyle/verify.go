package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/qrstyle/internal/imaging"
	"github.com/ironsheep/qrstyle/internal/qr"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Decode the QR code in an image and print its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().String("expect", "", "Fail unless the decoded content equals this")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]
	expect, _ := cmd.Flags().GetString("expect")

	img, err := imaging.NewImageCache(imaging.Decoder{}).Load(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := qr.Scan(img)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if expect != "" && text != expect {
		return fmt.Errorf("decoded content does not match: got %q, want %q", text, expect)
	}
	return nil
}
