package main

import (
	"fmt"
	"os"

	"objectif-go/internal/app"
	"objectif-go/internal/config"
	"objectif-go/internal/evidence"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "CreateSeal", "Capture").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "objectif",
	Short: "Forensic evidence photo manager",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new station ID
		stationID := uuid.New().String()

		cfg := config.NewConfig(stationID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Station ID: %s\n", stationID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Station ID: %s\n", cfg.StationID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		if cfg.WorkspaceRoot != "" {
			fmt.Printf("Workspace:  %s\n", cfg.WorkspaceRoot)
		} else {
			fmt.Println("Workspace:  (not set)")
		}
		return nil
	},
}

// workspace command
var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage the working directory",
}

var workspaceSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Set the workspace root directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("workspace directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("workspace root is not a directory: %s", args[0])
		}

		cfg, err := config.SetWorkspace(defaults["config_path"], args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Workspace set to %s\n", cfg.WorkspaceRoot)
		return nil
	},
}

var workspaceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the workspace root directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if cfg.WorkspaceRoot == "" {
			fmt.Println("No workspace configured.")
			return nil
		}
		fmt.Println(cfg.WorkspaceRoot)
		return nil
	},
}

// case command
var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage cases",
}

var caseCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new case folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateCase")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.CreateCase(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Case created: %s\n", c.Path)
		return nil
	},
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListCases")
		if err != nil {
			return err
		}
		defer a.Close()

		cases, err := a.ListCases()
		if err != nil {
			return err
		}
		if len(cases) == 0 {
			fmt.Println("No cases found.")
			return nil
		}
		for _, c := range cases {
			fmt.Println(c.Name)
		}
		return nil
	},
}

// seal command
var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Manage sealed items",
}

var sealCreateCmd = &cobra.Command{
	Use:   "create <case> <number> <name>",
	Short: "Create a new sealed item in a case",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateSeal")
		if err != nil {
			return err
		}
		defer a.Close()

		seal, err := a.CreateSeal(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Seal created: %s\n", seal.Path)
		return nil
	},
}

var sealListCmd = &cobra.Command{
	Use:   "list <case>",
	Short: "List sealed items in a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListSeals")
		if err != nil {
			return err
		}
		defer a.Close()

		seals, err := a.ListSeals(args[0])
		if err != nil {
			return err
		}
		if len(seals) == 0 {
			fmt.Println("No seals found.")
			return nil
		}
		for _, s := range seals {
			fmt.Printf("%s\t%s\n", s.FolderName(), s.CreationDate.Format("2006-01-02"))
		}
		return nil
	},
}

// object command
var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage test objects",
}

var objectCreateCmd = &cobra.Command{
	Use:   "create <case> <seal>",
	Short: "Allocate the next test-object letter in a seal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		legacy, _ := cmd.Flags().GetBool("legacy")

		a, err := newApp("CreateTestObject")
		if err != nil {
			return err
		}
		defer a.Close()

		var letter string
		if legacy {
			letter, err = a.CreateTestObjectLegacy(args[0], args[1])
		} else {
			letter, err = a.CreateTestObject(args[0], args[1])
		}
		if err != nil {
			return err
		}
		fmt.Printf("Object %s created\n", letter)
		return nil
	},
}

var objectListCmd = &cobra.Command{
	Use:   "list <case> <seal>",
	Short: "List test objects of a seal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListTestObjects")
		if err != nil {
			return err
		}
		defer a.Close()

		letters, err := a.ListTestObjects(args[0], args[1])
		if err != nil {
			return err
		}
		if len(letters) == 0 {
			fmt.Println("No objects found.")
			return nil
		}
		for _, l := range letters {
			fmt.Println(l)
		}
		return nil
	},
}

// photo command
var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage evidence photos",
}

var photoNextCmd = &cobra.Command{
	Use:   "next <case> <seal> <category>",
	Short: "Show where the next photo of a category would be written",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("NextPhotoPath")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.NextPhotoPath(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var photoListCmd = &cobra.Command{
	Use:   "list <case> <seal>",
	Short: "List the photos of a seal in workflow order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		object, _ := cmd.Flags().GetString("object")

		a, err := newApp("ListPhotos")
		if err != nil {
			return err
		}
		defer a.Close()

		var recs []evidence.PhotoRecord
		if object != "" {
			recs, err = a.ListObjectPhotos(args[0], args[1], object)
		} else {
			recs, err = a.ListSealPhotos(args[0], args[1])
		}
		if err != nil {
			return err
		}

		if len(recs) == 0 {
			fmt.Println("No photos found.")
			return nil
		}
		for _, r := range recs {
			fmt.Printf("%-14s %3d  %s\n", r.Category.Token(), r.Sequence, r.FilePath)
		}
		return nil
	},
}

var photoInfoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show a photo's dimensions and capture timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PhotoInfo")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.PhotoInfo(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Path:     %s\n", info.Path)
		fmt.Printf("Size:     %d bytes\n", info.Size)
		fmt.Printf("Pixels:   %dx%d\n", info.Width, info.Height)
		source := "file mtime"
		if info.FromEXIF {
			source = "EXIF"
		}
		fmt.Printf("Captured: %s (%s)\n", info.CapturedAt.Format("2006-01-02 15:04:05"), source)
		return nil
	},
}

var photoCaptureCmd = &cobra.Command{
	Use:   "capture <case> <seal> <category>",
	Short: "Take a photo on the connected device and file it under the seal",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Capture")
		if err != nil {
			return err
		}
		defer a.Close()

		// Progress lines are chatter for humans; keep piped output clean.
		var progress func(string)
		if term.IsTerminal(int(os.Stdout.Fd())) {
			progress = func(status string) { fmt.Println(status) }
		}

		path, err := a.Capture(cmd.Context(), args[0], args[1], args[2], progress)
		if err != nil {
			return err
		}
		fmt.Printf("Photo saved: %s\n", path)
		return nil
	},
}

var photoThumbCmd = &cobra.Command{
	Use:   "thumb <path>",
	Short: "Generate (or reuse) a cached thumbnail for a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Thumbnail")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Thumbnail(args[0])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// device command
var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage the Android device connection",
}

var deviceInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show connected device details",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeviceInfo")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.DeviceInfo(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Serial:  %s\n", info.Serial)
		fmt.Printf("Model:   %s\n", info.Model)
		fmt.Printf("Android: %s\n", info.AndroidVersion)
		return nil
	},
}

func init() {
	objectCreateCmd.Flags().Bool("legacy", false, "use the legacy objets_essai.json counter (26 objects max)")
	photoListCmd.Flags().String("object", "", "list photos of one test object instead of the seal stages")

	configCmd.AddCommand(configInitCmd, configListCmd)
	workspaceCmd.AddCommand(workspaceSetCmd, workspaceShowCmd)
	caseCmd.AddCommand(caseCreateCmd, caseListCmd)
	sealCmd.AddCommand(sealCreateCmd, sealListCmd)
	objectCmd.AddCommand(objectCreateCmd, objectListCmd)
	photoCmd.AddCommand(photoNextCmd, photoListCmd, photoInfoCmd, photoCaptureCmd, photoThumbCmd)
	deviceCmd.AddCommand(deviceInfoCmd)

	rootCmd.AddCommand(configCmd, workspaceCmd, caseCmd, sealCmd, objectCmd, photoCmd, deviceCmd)
}
