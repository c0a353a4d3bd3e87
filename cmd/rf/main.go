package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/raster-foundry/raster-foundry-go-client/internal/config"
	"github.com/raster-foundry/raster-foundry-go-client/internal/download"
	"github.com/raster-foundry/raster-foundry-go-client/internal/foundry"
	ioutils "github.com/raster-foundry/raster-foundry-go-client/internal/io"
	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
)

// bandFlags collects repeated -band name:index:nodata specs.
type bandFlags []model.Band

func (b *bandFlags) String() string {
	parts := make([]string, 0, len(*b))
	for _, band := range *b {
		parts = append(parts, fmt.Sprintf("%s:%s:%g", band.Name, band.Index, band.NoDataValue))
	}
	return strings.Join(parts, ",")
}

func (b *bandFlags) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return fmt.Errorf("band must be name:index:nodata, got %q", value)
	}
	noData, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return fmt.Errorf("band nodata %q is not a number", parts[2])
	}
	*b = append(*b, model.NewBand(parts[0], parts[1], noData))
	return nil
}

func usage() {
	fmt.Println("rf - Raster Foundry command line client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rf [flags] <command> [command flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  list                         List datasources")
	fmt.Println("  get <id>                     Show one datasource")
	fmt.Println("  create -name N [-band ...]   Create a datasource")
	fmt.Println("  update <id> [-name N] [-band ...]")
	fmt.Println("                               Update a datasource")
	fmt.Println("  delete <id>                  Delete a datasource")
	fmt.Println("  projects                     List projects")
	fmt.Println("  export -project <id> -bbox <minLng,minLat,maxLng,maxLat> -zoom <z>")
	fmt.Println("                               Start an export job")
	fmt.Println("  download <export-id>         Download a finished export's files")
	fmt.Println("  preview <project-id> -out <file>")
	fmt.Println("                               Save a tile preview")
	fmt.Println()
	fmt.Println("For interactive mode, use: rf-tui")
	fmt.Println()
	flag.PrintDefaults()
}

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		hostFlag    = flag.String("host", "", "API host (overrides config)")
		tokenFlag   = flag.String("token", "", "API token (overrides config)")
		refreshFlag = flag.String("refresh-token", "", "Refresh token (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *hostFlag != "" {
		settings.Host = *hostFlag
	}
	if *tokenFlag != "" {
		settings.APIToken = *tokenFlag
	}
	if *refreshFlag != "" {
		settings.RefreshToken = *refreshFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}
	if settings.APIToken == "" && settings.RefreshToken == "" {
		settings.RefreshToken = os.Getenv("RF_REFRESH_TOKEN")
		settings.APIToken = os.Getenv("RF_API_TOKEN")
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client, err := foundry.New(ctx, settings.ToClientConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if err := run(ctx, client, settings, command, args); err != nil {
		if ctx.Err() != nil {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *foundry.Client, settings *config.Settings, command string, args []string) error {
	switch command {
	case "list":
		return runList(ctx, client)
	case "get":
		if len(args) < 1 {
			return errors.New("usage: rf get <id>")
		}
		return runGet(ctx, client, args[0])
	case "create":
		return runCreate(ctx, client, args)
	case "update":
		return runUpdate(ctx, client, args)
	case "delete":
		if len(args) < 1 {
			return errors.New("usage: rf delete <id>")
		}
		return runDelete(ctx, client, args[0])
	case "projects":
		return runProjects(ctx, client)
	case "export":
		return runExport(ctx, client, args)
	case "download":
		if len(args) < 1 {
			return errors.New("usage: rf download <export-id>")
		}
		return runDownload(ctx, client, settings, args[0])
	case "preview":
		return runPreview(ctx, client, settings, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runList(ctx context.Context, client *foundry.Client) error {
	datasources, err := client.ListDatasources(ctx)
	if err != nil {
		return err
	}

	if len(datasources) == 0 {
		fmt.Println("No datasources.")
		return nil
	}

	for _, ds := range datasources {
		fmt.Printf("%s  %s (%d bands)\n", ds.ID, ds.Name, len(ds.Bands))
	}
	return nil
}

func runGet(ctx context.Context, client *foundry.Client, id string) error {
	ds, err := client.GetDatasource(ctx, id)
	if err != nil {
		return err
	}

	printDatasource(ds)
	return nil
}

func runCreate(ctx context.Context, client *foundry.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	name := fs.String("name", "", "Datasource name (required)")
	var bands bandFlags
	fs.Var(&bands, "band", "Band spec name:index:nodata (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("create requires -name")
	}

	ds, err := client.CreateDatasource(ctx, *name, bands)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created datasource %s\n", ds.ID)
	printDatasource(ds)
	return nil
}

func runUpdate(ctx context.Context, client *foundry.Client, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: rf update <id> [-name N] [-band ...]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	name := fs.String("name", "", "New datasource name")
	var bands bandFlags
	fs.Var(&bands, "band", "Replacement band spec name:index:nodata (repeatable)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var update model.DatasourceUpdate
	if *name != "" {
		update.Name = name
	}
	if len(bands) > 0 {
		replacement := []model.Band(bands)
		update.Bands = &replacement
	}
	if update.Name == nil && update.Bands == nil {
		return errors.New("update requires -name or -band")
	}

	if err := client.UpdateDatasource(ctx, id, update); err != nil {
		return err
	}

	fmt.Printf("✅ Updated datasource %s\n", id)
	return nil
}

func runDelete(ctx context.Context, client *foundry.Client, id string) error {
	if err := client.DeleteDatasource(ctx, id); err != nil {
		return err
	}
	fmt.Printf("✅ Deleted datasource %s\n", id)
	return nil
}

func runProjects(ctx context.Context, client *foundry.Client) error {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}

	for _, p := range projects {
		line := fmt.Sprintf("%s  %s", p.ID, p.Name)
		if lat, lng, err := p.Center(); err == nil {
			line += fmt.Sprintf("  center=(%.4f, %.4f)", lat, lng)
		}
		fmt.Println(line)
		fmt.Printf("    tiles: %s\n", client.TileTemplate(&p))
	}
	return nil
}

func runExport(ctx context.Context, client *foundry.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	project := fs.String("project", "", "Project id to export")
	analysis := fs.String("analysis", "", "Analysis id to export")
	bbox := fs.String("bbox", "", "Region as minLng,minLat,maxLng,maxLat (required)")
	zoom := fs.Int("zoom", 0, "Zoom level to render at (required)")
	source := fs.String("source", "", "Destination for exported files")
	exportType := fs.String("type", "LOCAL", "Export type: LOCAL, S3 or DROPBOX")
	if err := fs.Parse(args); err != nil {
		return err
	}

	export, err := client.CreateExport(ctx, foundry.ExportOptions{
		ProjectID:  *project,
		AnalysisID: *analysis,
		BBox:       *bbox,
		Zoom:       *zoom,
		Source:     *source,
		Type:       model.ExportType(*exportType),
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Export %s started (%s)\n", export.ID, export.Status)
	fmt.Printf("   Check progress with: rf download %s\n", export.ID)
	return nil
}

func runDownload(ctx context.Context, client *foundry.Client, settings *config.Settings, exportID string) error {
	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !settings.Verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(ctx, exportID); err != nil {
		return err
	}

	fmt.Println("\n📥 Starting downloads...")
	if err := manager.StartDownloads(ctx); err != nil {
		return err
	}

	received, total, filesReceived, filesTotal := manager.GetProgress()
	fmt.Println()
	fmt.Printf("✨ Complete! Downloaded %d/%d files (%.2f MB)\n", filesReceived, filesTotal, float64(received)/1024/1024)
	if total > 0 && received < total {
		fmt.Printf("   (%.2f MB expected)\n", float64(total)/1024/1024)
	}
	return nil
}

func runPreview(ctx context.Context, client *foundry.Client, settings *config.Settings, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: rf preview <project-id> [-out file]")
	}
	projectID := args[0]

	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	out := fs.String("out", "", "Output file for the preview image")
	zoom := fs.Int("zoom", settings.TilePreviewZoom, "Zoom level of the tile to fetch")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *out == "" {
		if settings.ConvertPreviewToJPG {
			*out = "preview.jpg"
		} else {
			*out = "preview.png"
		}
	}

	project, err := client.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	lat, lng, err := project.Center()
	if err != nil {
		return err
	}

	x, y := tileAt(lat, lng, *zoom)
	data, err := client.FetchTile(ctx, project, *zoom, x, y)
	if err != nil {
		return err
	}

	preview, err := previewImage(ctx, data, settings)
	if err != nil {
		return err
	}

	if err := ioutils.WriteFile(ctx, *out, preview); err != nil {
		return err
	}

	fmt.Printf("✅ Saved preview of %s to %s\n", project.Name, *out)
	return nil
}

// previewImage prepares tile bytes for writing: a resized JPEG when
// conversion is enabled, the raw PNG tile otherwise.
func previewImage(ctx context.Context, data []byte, settings *config.Settings) ([]byte, error) {
	if !settings.ConvertPreviewToJPG {
		return data, nil
	}
	svc := ioutils.NewImageService()
	return svc.ResizeImage(ctx, data, settings.TilePreviewMaxSize, settings.TilePreviewMaxSize)
}

func printDatasource(ds *model.Datasource) {
	fmt.Printf("Name:     %s\n", ds.Name)
	fmt.Printf("ID:       %s\n", ds.ID)
	if !ds.CreatedAt.IsZero() {
		fmt.Printf("Created:  %s\n", ds.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if len(ds.Bands) == 0 {
		fmt.Println("Bands:    none")
		return
	}
	fmt.Println("Bands:")
	for _, band := range ds.Bands {
		fmt.Printf("  %s  %-12s nodata=%g\n", band.Index, band.Name, band.NoDataValue)
	}
}

// tileAt converts a lat/lng to slippy-map tile coordinates at a zoom.
func tileAt(lat, lng float64, zoom int) (x, y int) {
	n := int(1) << uint(zoom)
	fn := float64(n)
	x = int((lng + 180) / 360 * fn)
	latRad := lat * math.Pi / 180
	y = int((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * fn)
	// Longitude 180 and extreme latitudes land one past the grid edge.
	x = clampTile(x, n)
	y = clampTile(y, n)
	return x, y
}

func clampTile(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return n - 1
	}
	return v
}
