package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/curlrequests/toneget/pkg/tonal"
)

func main() {
	// Usage: go run main.go -email "you@example.com" -password "your_password"

	emailFlag := flag.String("email", "", "Tonal account email")
	passwordFlag := flag.String("password", "", "Tonal account password")

	// Parse the command-line flags
	flag.Parse()

	if *emailFlag == "" {
		fmt.Println("Email is required. Please provide it using the -email flag.")
		return
	}

	if *passwordFlag == "" {
		fmt.Println("Password is required. Please provide it using the -password flag.")
		return
	}

	ctx := context.Background()

	client := tonal.NewClient(tonal.DefaultConfig())
	if err := client.Login(ctx, *emailFlag, *passwordFlag); err != nil {
		fmt.Println("Login failed:", err)
		return
	}

	userInfo, err := client.GetUserInfo(ctx)
	if err != nil {
		fmt.Println("Failed to get user info:", err)
		return
	}

	workouts, err := client.DownloadWorkouts(ctx, userInfo.Get("id").String())
	if err != nil {
		fmt.Println("Failed to download workouts:", err)
		return
	}

	for _, w := range workouts {
		fmt.Println(w.BeginTime(), w.Type(), w.Get("title").String())
	}
}
