package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/qrstyle/internal/qr"
)

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Print the content string built for an SMS, contact or location",
	Args:  cobra.NoArgs,
	RunE:  runPayload,
}

func init() {
	addPayloadFlags(payloadCmd)
	rootCmd.AddCommand(payloadCmd)
}

// addPayloadFlags registers the structured payload fields shared by the
// payload and render commands.
func addPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "url", "Payload type (url, sms, vcard, geo)")
	cmd.Flags().String("url", "", "URL or free text (url)")
	cmd.Flags().String("phone", "", "Phone number (sms, vcard)")
	cmd.Flags().String("message", "", "Message body (sms)")
	cmd.Flags().String("name", "", "Full name (vcard)")
	cmd.Flags().String("email", "", "Email address (vcard)")
	cmd.Flags().String("org", "", "Organization (vcard)")
	cmd.Flags().String("lat", "", "Latitude in decimal degrees (geo)")
	cmd.Flags().String("lng", "", "Longitude in decimal degrees (geo)")
}

func payloadFromFlags(cmd *cobra.Command) (qr.Payload, error) {
	typeStr, _ := cmd.Flags().GetString("type")
	t, err := qr.ParsePayloadType(typeStr)
	if err != nil {
		return qr.Payload{}, err
	}

	p := qr.Payload{Type: t}
	p.URL, _ = cmd.Flags().GetString("url")
	p.Phone, _ = cmd.Flags().GetString("phone")
	p.Message, _ = cmd.Flags().GetString("message")
	p.Name, _ = cmd.Flags().GetString("name")
	p.Email, _ = cmd.Flags().GetString("email")
	p.Org, _ = cmd.Flags().GetString("org")
	p.Lat, _ = cmd.Flags().GetString("lat")
	p.Lng, _ = cmd.Flags().GetString("lng")
	return p, nil
}

func runPayload(cmd *cobra.Command, args []string) error {
	p, err := payloadFromFlags(cmd)
	if err != nil {
		return err
	}
	content, err := p.Content()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), content)
	return nil
}
