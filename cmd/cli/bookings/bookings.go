package bookings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/sharebnb/cmd/cli/config"
	"github.com/crucial707/sharebnb/cmd/cli/output"
	"github.com/crucial707/sharebnb/cmd/cli/root"
	"github.com/spf13/cobra"
)

type booking struct {
	ID             int    `json:"id"`
	RenterUsername string `json:"renterUsername"`
	ListingID      int    `json:"listingId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// ==========================
// CLI Command Init
// ==========================
func init() {
	bookingsCmd := &cobra.Command{
		Use:   "bookings",
		Short: "Browse bookings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all bookings",
		RunE:  runList,
	}

	bookingsCmd.AddCommand(listCmd)
	root.GetRoot().AddCommand(bookingsCmd)
}

// ==========================
// List Bookings
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(config.APIURL() + "/bookings")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Bookings []booking `json:"bookings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(result.Bookings))
	for _, b := range result.Bookings {
		rows = append(rows, []interface{}{b.ID, b.RenterUsername, b.ListingID, b.StartDate, b.EndDate})
	}
	output.RenderTable([]string{"ID", "Renter", "Listing", "Start", "End"}, rows)
	return nil
}
