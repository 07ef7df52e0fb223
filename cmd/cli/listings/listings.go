package listings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/crucial707/sharebnb/cmd/cli/config"
	"github.com/crucial707/sharebnb/cmd/cli/output"
	"github.com/crucial707/sharebnb/cmd/cli/root"
	"github.com/spf13/cobra"
)

type listing struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
	OwnerID     string  `json:"ownerId"`
}

// ==========================
// CLI Command Init
// ==========================
func init() {
	listingsCmd := &cobra.Command{
		Use:   "listings",
		Short: "Browse and create listings",
	}

	var title, location string
	var maxPrice float64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List listings, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(title, location, maxPrice, cmd.Flags().Changed("max-price"))
		},
	}
	listCmd.Flags().StringVar(&title, "title", "", "Filter by partial title match")
	listCmd.Flags().StringVar(&location, "location", "", "Filter by partial location match")
	listCmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Filter by maximum price")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a listing",
		RunE:  runCreate,
	}
	createCmd.Flags().String("title", "", "Listing title")
	createCmd.Flags().String("location", "", "Listing location")
	createCmd.Flags().Float64("price", 0, "Price per night")
	createCmd.Flags().Int("capacity", 1, "Guest capacity")
	createCmd.Flags().String("description", "", "Listing description")
	createCmd.Flags().String("owner", "", "Owner username")

	listingsCmd.AddCommand(listCmd, createCmd)
	root.GetRoot().AddCommand(listingsCmd)
}

// ==========================
// List Listings
// ==========================
func runList(title, location string, maxPrice float64, maxPriceSet bool) error {
	q := url.Values{}
	if title != "" {
		q.Set("title", title)
	}
	if location != "" {
		q.Set("location", location)
	}
	if maxPriceSet {
		q.Set("maxPrice", strconv.FormatFloat(maxPrice, 'f', -1, 64))
	}

	endpoint := config.APIURL() + "/listings"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	resp, err := http.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Listings []listing `json:"listings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(result.Listings))
	for _, l := range result.Listings {
		rows = append(rows, []interface{}{l.ID, l.Title, l.Location, l.Price, l.Capacity, l.OwnerID})
	}
	output.RenderTable([]string{"ID", "Title", "Location", "Price", "Capacity", "Owner"}, rows)
	return nil
}

// ==========================
// Create Listing
// ==========================
func runCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	location, _ := cmd.Flags().GetString("location")
	price, _ := cmd.Flags().GetFloat64("price")
	capacity, _ := cmd.Flags().GetInt("capacity")
	description, _ := cmd.Flags().GetString("description")
	owner, _ := cmd.Flags().GetString("owner")

	payload := map[string]interface{}{
		"title":       title,
		"location":    location,
		"price":       price,
		"capacity":    capacity,
		"description": description,
		"ownerId":     owner,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/listings", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Listing listing `json:"listing"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	fmt.Printf("Created listing %q (id %d)\n", result.Listing.Title, result.Listing.ID)
	return nil
}
