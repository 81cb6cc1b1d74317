package main

import (
	"fmt"

	"github.com/Xuanwo/go-locale"
	"github.com/spf13/cobra"

	"github.com/zelzip/niiebla-go/lib/icebrk"
)

var (
	mkeyPlatform      string
	mkeyAlgorithm     string
	mkeyInquiryNumber uint64
	mkeyDay           uint8
	mkeyMonth         uint8
	mkeyLocale        string
)

// UnknownPlatformFlagError is returned when --platform names a platform
// this command does not recognize.
type UnknownPlatformFlagError struct{ Platform string }

func (e *UnknownPlatformFlagError) Error() string {
	return fmt.Sprintf("unknown platform: %q (want wii, dsi, 3ds, wiiu or switch)", e.Platform)
}

// UnknownAlgorithmFlagError is returned when --algorithm names an
// algorithm version this command does not recognize.
type UnknownAlgorithmFlagError struct{ Algorithm string }

func (e *UnknownAlgorithmFlagError) Error() string {
	return fmt.Sprintf("unknown algorithm: %q (want v0, v1, v2 or v3)", e.Algorithm)
}

// InquiryNumberOverflowsV0Error is returned when --inquiry exceeds what the
// v0 algorithm's 32-bit input can represent. This is a CLI-boundary check,
// not icebrk's own internal digit-count assertion: without it, casting
// --inquiry down to uint32 before calling CalculateV0MasterKey would
// silently wrap a too-large value into one that passes icebrk's own range
// check instead of being rejected.
type InquiryNumberOverflowsV0Error struct{ InquiryNumber uint64 }

func (e *InquiryNumberOverflowsV0Error) Error() string {
	return fmt.Sprintf("inquiry number %d does not fit the v0 algorithm's 32-bit input", e.InquiryNumber)
}

func parsePlatformFlag(value string) (icebrk.Platform, error) {
	switch value {
	case "wii":
		return icebrk.PlatformWii, nil
	case "dsi":
		return icebrk.PlatformDsi, nil
	case "3ds":
		return icebrk.Platform3ds, nil
	case "wiiu":
		return icebrk.PlatformWiiU, nil
	case "switch":
		return icebrk.PlatformSwitch, nil
	default:
		return 0, &UnknownPlatformFlagError{Platform: value}
	}
}

// preferredDateOrder reports whether a detected or overridden locale
// prefers printing a day/month pair as MM/DD (US-style) instead of DD/MM.
func preferredDateOrder(override string) bool {
	base := override
	if base == "" {
		tag, err := locale.Detect()
		if err != nil {
			return false
		}
		region, confident := tag.Region()
		return confident != 0 && region.String() == "US"
	}
	return base == "US"
}

func formatDateEcho(day, month uint8, mmdd bool) string {
	if mmdd {
		return fmt.Sprintf("%02d/%02d", month, day)
	}
	return fmt.Sprintf("%02d/%02d", day, month)
}

var mkeyCmd = &cobra.Command{
	Use:   "mkey",
	Short: "Calculate a parental control master key",
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := parsePlatformFlag(mkeyPlatform)
		if err != nil {
			return err
		}

		mmdd := preferredDateOrder(mkeyLocale)
		fmt.Printf("Inquiry number: %d\n", mkeyInquiryNumber)
		fmt.Printf("Date:           %s\n", formatDateEcho(mkeyDay, mkeyMonth, mmdd))

		switch mkeyAlgorithm {
		case "v0":
			if mkeyInquiryNumber > 0xFFFFFFFF {
				return &InquiryNumberOverflowsV0Error{InquiryNumber: mkeyInquiryNumber}
			}
			key := icebrk.CalculateV0MasterKey(platform, uint32(mkeyInquiryNumber), mkeyDay, mkeyMonth)
			fmt.Printf("Master key:     %05d\n", key)

		case "v1":
			key, err := icebrk.CalculateV1MasterKey(mkeyInquiryNumber, mkeyDay, mkeyMonth)
			if err != nil {
				return err
			}
			fmt.Printf("Master key:     %05d\n", key)

		case "v2":
			key, err := icebrk.CalculateV2MasterKey(platform, mkeyInquiryNumber, mkeyDay, mkeyMonth)
			if err != nil {
				return err
			}
			fmt.Printf("Master key:     %05d\n", key)

		case "v3":
			key, err := icebrk.CalculateV3MasterKey(mkeyInquiryNumber)
			if err != nil {
				return err
			}
			fmt.Printf("Master key:     %08d\n", key)

		default:
			return &UnknownAlgorithmFlagError{Algorithm: mkeyAlgorithm}
		}

		return nil
	},
}

func init() {
	mkeyCmd.Flags().StringVar(&mkeyPlatform, "platform", "", "target platform: wii, dsi, 3ds, wiiu or switch")
	mkeyCmd.Flags().StringVar(&mkeyAlgorithm, "algorithm", "", "master key algorithm version: v0, v1, v2 or v3")
	mkeyCmd.Flags().Uint64Var(&mkeyInquiryNumber, "inquiry", 0, "inquiry number shown on the console's parental control screen")
	mkeyCmd.Flags().Uint8Var(&mkeyDay, "day", 1, "day of the month the inquiry number was generated")
	mkeyCmd.Flags().Uint8Var(&mkeyMonth, "month", 1, "month the inquiry number was generated")
	mkeyCmd.Flags().StringVar(&mkeyLocale, "locale", "", "override locale detection (e.g. \"US\") when formatting the date echo")
	_ = mkeyCmd.MarkFlagRequired("platform")
	_ = mkeyCmd.MarkFlagRequired("algorithm")
	_ = mkeyCmd.MarkFlagRequired("inquiry")

	rootCmd.AddCommand(mkeyCmd)
}
