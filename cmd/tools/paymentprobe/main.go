package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Drives a payment through its lifecycle against a running API instance.
// Useful for checking the idempotent create path by hand: run it twice
// with the same order id and compare the returned payment ids.

type createRequest struct {
	UserID     uint   `json:"user_id"`
	OrderID    uint   `json:"order_id"`
	TotalPrice string `json:"total_price"`
}

func main() {
	base := flag.String("base", "http://localhost:8080", "API base URL")
	userID := flag.Uint("user-id", 0, "User id")
	orderID := flag.Uint("order-id", 0, "Order id")
	amount := flag.String("amount", "", "Expected order total, e.g. 199.99")
	confirm := flag.Bool("confirm", false, "Confirm the payment after creating it")

	flag.Parse()

	if *userID == 0 || *orderID == 0 || *amount == "" {
		fmt.Fprintf(os.Stderr, "Error: -user-id, -order-id and -amount are required\n")
		os.Exit(1)
	}

	body, err := json.Marshal(createRequest{UserID: *userID, OrderID: *orderID, TotalPrice: *amount})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling request: %v\n", err)
		os.Exit(1)
	}

	status, resp := post(*base+"/api/payments", body)
	fmt.Printf("Create status: %d\n", status)
	fmt.Printf("Response: %s\n", resp)
	if status != http.StatusCreated && status != http.StatusOK {
		os.Exit(1)
	}

	if !*confirm {
		return
	}

	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp, &created); err != nil || created.Data.ID == 0 {
		fmt.Fprintf(os.Stderr, "Error: could not read payment id from response\n")
		os.Exit(1)
	}

	status, resp = post(fmt.Sprintf("%s/api/payments/%d/confirm", *base, created.Data.ID), nil)
	fmt.Printf("Confirm status: %d\n", status)
	fmt.Printf("Response: %s\n", resp)
	if status != http.StatusOK {
		os.Exit(1)
	}
}

func post(url string, body []byte) (int, []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
