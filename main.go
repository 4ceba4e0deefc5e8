package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"nanowatch/internal"
	"nanowatch/internal/config"
	"nanowatch/internal/model"
	"nanowatch/internal/nanowatch"
)

func main() {
	// load values from .env into the system
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found")
	}

	serve := flag.Bool("serve", false, "expose the bulk generation over HTTP instead of the interactive menu")
	flag.Parse()

	cfg, err := config.NewApplicationConfig()
	if err != nil {
		log.Fatalf("failed to start application: %v", err)
	}
	if level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel())); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()
	if _, err := cfg.Client().Login(ctx, cfg.Email(), cfg.Password()); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	service := internal.NewService(cfg.Client(), cfg.HolidayClient(), cfg.ExceptionDays(),
		cfg.HolidayCountry(), cfg.ReportFileLocation(), cfg.EmailClient(), cfg.EmailTo(), cfg.EmailFrom())

	if *serve {
		server := internal.SetupServer(cfg, service)
		server.Start("", cfg.ServerPort())
		return
	}

	runMenu(ctx, cfg, service)
}

func runMenu(ctx context.Context, cfg *config.ApplicationConfig, service *internal.Service) {
	profile, err := cfg.Client().GetMyProfile(ctx)
	if err != nil {
		log.Fatalf("profile fetch failed: %v", err)
	}
	fmt.Println("Your profile:")
	fmt.Println(string(profile.Raw))

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("\nChoose the type of request you want to send:")
	fmt.Println("1: Register Entrance/Exit (Single Attendance Request)")
	fmt.Println("2: Request One-Day Leave")
	fmt.Println("3: Bulk Auto-Generate Attendance Requests for a Date Range (Skip Holidays and Exceptions)")

	switch prompt(reader, "Enter your choice (1, 2, or 3): ") {
	case "1":
		stamp, err := promptStamp(reader, "Enter datetime (ISO format, e.g. 2025-01-15T10:00:00+03:30): ")
		if err != nil {
			fmt.Println(err)
			return
		}
		result, err := service.RegisterAttendance(ctx, stamp)
		if err != nil {
			fmt.Println("Error updating attendance request:", err)
			return
		}
		fmt.Println("\nAttendance request result:")
		fmt.Println(string(result))

	case "2":
		start, err := promptStamp(reader, "Enter leave start datetime (ISO format, e.g. 2025-02-04T00:00:00+03:30): ")
		if err != nil {
			fmt.Println(err)
			return
		}
		end, err := promptStamp(reader, "Enter leave end datetime (ISO format, e.g. 2025-02-05T00:00:00+03:30): ")
		if err != nil {
			fmt.Println(err)
			return
		}
		result, err := service.RequestLeave(ctx, start, end)
		if err != nil {
			fmt.Println("Error updating leave request:", err)
			return
		}
		fmt.Println("\nLeave request result:")
		fmt.Println(string(result))

	case "3":
		startDate, err := promptDate(reader, "Enter start date (YYYY-MM-DD): ")
		if err != nil {
			fmt.Println(err)
			return
		}
		endDate, err := promptDate(reader, "Enter end date (YYYY-MM-DD): ")
		if err != nil {
			fmt.Println(err)
			return
		}
		if endDate.Before(startDate) {
			fmt.Println("End date must not be before start date.")
			return
		}
		results, err := service.GenerateAttendance(ctx, startDate, endDate)
		if err != nil {
			fmt.Println("Error during bulk generation:", err)
			return
		}
		printResults(results)

	default:
		fmt.Println("Invalid choice. Exiting.")
	}
}

func printResults(results []model.DayResult) {
	for _, result := range results {
		line := fmt.Sprintf("%s: %s", result.Date.Format(model.DayFormat), result.Status)
		if result.Reason != "" {
			line += fmt.Sprintf(" (%s)", result.Reason)
		}
		if result.Entrance != "" {
			line += fmt.Sprintf(" entrance=%s exit=%s", result.Entrance, result.Exit)
		}
		fmt.Println(line)
		for _, e := range result.Errors {
			fmt.Println("  error:", e)
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptStamp(reader *bufio.Reader, label string) (nanowatch.DateOrTime, error) {
	raw := prompt(reader, label)
	if _, err := time.Parse(nanowatch.StampLayout, raw); err != nil {
		return nanowatch.DateOrTime{}, &model.InputValidationError{Field: "datetime", Value: raw, Err: err}
	}
	return nanowatch.StringValue(raw), nil
}

func promptDate(reader *bufio.Reader, label string) (time.Time, error) {
	raw := prompt(reader, label)
	t, err := time.Parse(model.DayFormat, raw)
	if err != nil {
		return time.Time{}, &model.InputValidationError{Field: "date", Value: raw, Err: err}
	}
	return t, nil
}
