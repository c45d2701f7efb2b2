package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "ship":
		handleShip(args)
	case "job":
		handleJob(args)
	case "kpi":
		showKPIs()
	case "notifications":
		listNotifications()
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shipkeeper auth <login|logout|who>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", subCmd)
	}
}

func handleShip(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shipkeeper ship <list|delete>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listShips()
	case "delete":
		deleteShip(args[1:])
	default:
		fmt.Printf("unknown ship command: %s\n", subCmd)
	}
}

func handleJob(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shipkeeper job <list|calendar>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listJobs()
	case "calendar":
		jobCalendar(args[1:])
	default:
		fmt.Printf("unknown job command: %s\n", subCmd)
	}
}

// Auth commands
func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"email": *email, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s (%v)\n", *email, result["role"])
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func logoutUser() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

// Ship commands
func listShips() {
	var result struct {
		Ships []map[string]interface{} `json:"ships"`
	}
	if !getJSON("/ships", &result) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tIMO\tFLAG\tSTATUS")
	for _, s := range result.Ships {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", s["id"], s["name"], s["imo"], s["flag"], s["status"])
	}
	w.Flush()
}

func deleteShip(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shipkeeper ship delete <ship-id>")
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/ships/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 204 {
		fmt.Printf("✓ Ship %s deleted (components and jobs cascade)\n", args[0])
	} else {
		fmt.Printf("✗ Delete failed (status %d)\n", resp.StatusCode)
	}
}

// Job commands
func listJobs() {
	var result struct {
		Jobs []map[string]interface{} `json:"jobs"`
	}
	if !getJSON("/jobs", &result) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPRIORITY\tSTATUS\tSCHEDULED")
	for _, j := range result.Jobs {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", j["id"], j["type"], j["priority"], j["status"], j["scheduledDate"])
	}
	w.Flush()
}

func jobCalendar(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shipkeeper job calendar <YYYY-MM-DD>")
		return
	}

	var result struct {
		Jobs []map[string]interface{} `json:"jobs"`
	}
	if !getJSON("/calendar?date="+args[0], &result) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPRIORITY\tSTATUS")
	for _, j := range result.Jobs {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", j["id"], j["type"], j["priority"], j["status"])
	}
	w.Flush()
}

func showKPIs() {
	var kpis map[string]interface{}
	if !getJSON("/kpis", &kpis) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ships\t%v\n", kpis["shipCount"])
	fmt.Fprintf(w, "Overdue components\t%v\n", kpis["overdueComponents"])
	fmt.Fprintf(w, "Jobs in progress\t%v\n", kpis["jobsInProgress"])
	fmt.Fprintf(w, "Jobs completed\t%v\n", kpis["jobsCompleted"])
	fmt.Fprintf(w, "Unread notifications\t%v\n", kpis["unreadNotifications"])
	w.Flush()
}

func listNotifications() {
	var result struct {
		Notifications []map[string]interface{} `json:"notifications"`
	}
	if !getJSON("/notifications", &result) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tREAD\tMESSAGE")
	for _, n := range result.Notifications {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", n["id"], n["type"], n["read"], n["message"])
	}
	w.Flush()
}

// Helper functions
func getJSON(path string, out interface{}) bool {
	req, _ := http.NewRequest("GET", getAPIURL()+path, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		fmt.Printf("✗ Request failed (status %d), try 'shipkeeper auth login'\n", resp.StatusCode)
		return false
	}
	json.NewDecoder(resp.Body).Decode(out)
	return true
}

func getAPIURL() string {
	if url := os.Getenv("SHIPKEEPER_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.shipkeeper/token"
}

func saveToken(token string) error {
	os.MkdirAll(os.Getenv("HOME")+"/.shipkeeper", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`shipkeeper CLI

Usage:
  shipkeeper <command> [options]

Commands:
  auth           User authentication (login, logout, who)
  ship           Ship operations (list, delete)
  job            Job operations (list, calendar)
  kpi            Dashboard headline numbers
  notifications  List notifications
  help           Show this help message

Environment Variables:
  SHIPKEEPER_API    API endpoint (default: http://localhost:8080/api)

Examples:
  shipkeeper auth login -email admin@entnt.in -password admin123
  shipkeeper ship list
  shipkeeper job calendar 2025-05-05
  shipkeeper kpi
`)
}
