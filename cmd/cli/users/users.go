package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/sharebnb/cmd/cli/config"
	"github.com/crucial707/sharebnb/cmd/cli/root"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and authentication",
		Long: `Sign up or log in to the ShareBnB API.
Stores the JWT token locally for future commands.`,
	}

	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Sign up a new user",
		RunE:  runSignup,
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login and save the JWT token locally for future CLI commands.",
		RunE:  runLogin,
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved JWT token.",
		RunE:  runLogout,
	}

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the currently logged-in user",
		RunE:  runMe,
	}

	usersCmd.AddCommand(signupCmd, loginCmd, logoutCmd, meCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// Signup
// ==========================
func runSignup(cmd *cobra.Command, args []string) error {
	payload := map[string]string{}
	for _, field := range []string{"username", "password", "firstName", "lastName", "email", "userType"} {
		var value string
		fmt.Printf("%s: ", field)
		fmt.Scanln(&value)
		payload[field] = value
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/users", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Token != "" {
		if err := config.SaveToken(result.Token); err != nil {
			return err
		}
	}

	fmt.Println("Signed up successfully! JWT token saved locally.")
	return nil
}

// ==========================
// Login
// ==========================
func runLogin(cmd *cobra.Command, args []string) error {
	var username, password string
	fmt.Print("Username: ")
	fmt.Scanln(&username)
	fmt.Print("Password: ")
	fmt.Scanln(&password)

	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Token == "" {
		return fmt.Errorf("token not returned by API")
	}

	if err := config.SaveToken(result.Token); err != nil {
		return err
	}

	fmt.Println("Login successful! JWT token saved locally.")
	return nil
}

// ==========================
// Me
// ==========================
func runMe(cmd *cobra.Command, args []string) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	req, err := http.NewRequest("GET", config.APIURL()+"/me", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		User struct {
			Username  string `json:"username"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Email     string `json:"email"`
			UserType  string `json:"userType"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	u := result.User
	fmt.Printf("%s (%s %s) <%s> [%s]\n", u.Username, u.FirstName, u.LastName, u.Email, u.UserType)
	return nil
}

// ==========================
// Logout
// ==========================
func runLogout(cmd *cobra.Command, args []string) error {
	if err := config.ClearToken(); err != nil {
		return err
	}
	fmt.Println("Logged out successfully.")
	return nil
}
