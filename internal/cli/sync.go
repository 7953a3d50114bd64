// ABOUTME: Sync subcommand for Charm cloud backup of run records
// ABOUTME: Provides status, link, push, and list commands (SSH key auth)
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/proto"
	"github.com/fatih/color"
	"github.com/harper/runlog/internal/charm"
	"github.com/harper/runlog/internal/config"
	"github.com/harper/runlog/internal/db"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Back up run records to the cloud",
	Long: `Back up your run history securely to the cloud using Charm.

Authentication is automatic via SSH keys - no login required!
Transcripts stay on disk; only run records (name, times, exit status,
transcript path) are synced.

Commands:
  status  - Show sync status and Charm user ID
  link    - Link this device to another Charm account
  push    - Upload every recorded run
  list    - List runs stored in the cloud

Set "sync = true" in .runlog to push each run as it finishes.`,
}

// charmClient builds a client from the project config for the working directory.
func charmClient() (*charm.Client, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return charm.NewClient(charm.Config{CharmHost: cfg.CharmHost})
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmClient()
		if err != nil {
			return err
		}

		// Get user ID
		id, err := c.ID()
		if err != nil {
			fmt.Printf("Charm:     not connected (%v)\n", err)
			fmt.Println("\nRun 'runlog sync link' to connect to a Charm account.")
			return nil
		}

		fmt.Printf("Charm ID:  %s\n", id)
		fmt.Printf("Server:    %s\n", charm.GetCharmHost())
		color.Green("Status:    Connected")

		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to a Charm account",
	Long: `Link this device to an existing Charm account.

This will generate a link code that you can enter on another device
that's already linked to your Charm account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := charmClient(); err != nil {
			return err
		}

		cc, err := client.NewClientWithDefaults()
		if err != nil {
			return fmt.Errorf("failed to create Charm client: %w", err)
		}

		// Check if already linked
		if _, err := cc.ID(); err == nil {
			color.Green("Already linked to a Charm account!")
			fmt.Println("Run 'runlog sync status' to see your account info.")
			return nil
		}

		fmt.Println("Generating link request...")
		fmt.Println("Enter this code on a device that's already linked to your Charm account.")

		lh := &linkHandler{}
		if err := cc.LinkGen(lh); err != nil {
			return fmt.Errorf("link failed: %w", err)
		}

		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload every recorded run",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmClient()
		if err != nil {
			return err
		}

		database, err := db.InitDB(config.HistoryDBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		runs, err := db.ListRuns(database, db.RunFilter{})
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		for _, run := range runs {
			if err := c.PushRun(run); err != nil {
				return err
			}
		}
		if err := c.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		color.Green("Pushed %d runs.", len(runs))
		return nil
	},
}

var syncListCmd = &cobra.Command{
	Use:   "list",
	Short: "List runs stored in the cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmClient()
		if err != nil {
			return err
		}

		runs, err := c.ListRuns()
		if err != nil {
			return err
		}

		printRunTable(cmd.OutOrStdout(), runs)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncListCmd)

	rootCmd.AddCommand(syncCmd)
}

// linkHandler implements proto.LinkHandler for the link flow.
type linkHandler struct{}

func (lh *linkHandler) TokenCreated(l *proto.Link) {
	fmt.Printf("\nLink code: %s\n\n", l.Token)
	fmt.Println("Waiting for approval...")
}

func (lh *linkHandler) TokenSent(l *proto.Link) {
	// Token has been validated
}

func (lh *linkHandler) ValidToken(l *proto.Link) {
	// Linking complete
}

func (lh *linkHandler) InvalidToken(l *proto.Link) {
	fmt.Println("Invalid or expired token. Please try again.")
}

func (lh *linkHandler) Request(l *proto.Link) bool {
	fmt.Printf("\nLink request from: %s\n", l.RequestAddr)
	fmt.Print("Approve? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}

func (lh *linkHandler) RequestDenied(l *proto.Link) {
	fmt.Println("Link request denied.")
}

func (lh *linkHandler) SameUser(l *proto.Link) {
	color.Green("\nSuccessfully linked!")
}

func (lh *linkHandler) Success(l *proto.Link) {
	color.Green("\nSuccessfully linked!")
}

func (lh *linkHandler) Timeout(l *proto.Link) {
	fmt.Println("\nLink request timed out. Please try again.")
}

func (lh *linkHandler) Error(l *proto.Link) {
	fmt.Println("\nError during linking")
}
