package arkive

import (
	"fmt"
	"os"

	"github.com/arkive/arkive/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgFilesystem string
	cfgOutput     string
	cfgMaxPath    int
	cfgMaxName    int
	cfgChecks     []string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .arkive.yml with the selected profile and checks",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&cfgFilesystem, "filesystem", "f", "", "file-system profile: "+profileList())
	initCmd.Flags().StringVar(&cfgOutput, "output", ".arkive.yml", "output file path")
	initCmd.Flags().IntVar(&cfgMaxPath, "max-path-length", 0, "path-length limit (0 = profile default)")
	initCmd.Flags().IntVar(&cfgMaxName, "max-name-length", 0, "name-length limit (0 = profile default)")
	initCmd.Flags().StringSliceVar(&cfgChecks, "checks", []string{"characters", "length"}, "checks to enable: empty|characters|length")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	// Validate before writing anything.
	if _, err := config.ParseChecks(cfgChecks); err != nil {
		return err
	}
	if cfgFilesystem != "" {
		if _, err := config.ProfileByName(cfgFilesystem, "."); err != nil {
			return err
		}
	}

	fc := config.FileConfig{
		Filesystem:    optStrPtr(cfgFilesystem),
		MaxPathLength: intPtr(cfgMaxPath),
		MaxNameLength: intPtr(cfgMaxName),
		Checks:        cfgChecks,
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	header := "# arkive configuration\n" +
		"# filesystem: ntfs-win32 | ntfs-posix | ext4 (omit for auto-detection)\n" +
		"# checks: any of empty, characters, length\n"
	if err := os.WriteFile(cfgOutput, append([]byte(header), b...), 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
