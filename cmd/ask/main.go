package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docqa-backend/internal/bootstrap"
	"docqa-backend/internal/extract"
	"docqa-backend/internal/qa"
	"docqa-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	filePath := flag.String("file", "", "Path to a PDF, DOCX or TXT document")
	query := flag.String("q", "", "Question to ask about the document")
	provider := flag.String("provider", cfg.QAProvider, "QA provider (huggingface or openai)")
	model := flag.String("model", cfg.ModelName, "QA model name")
	printText := flag.Bool("text", false, "Print the extracted text instead of asking")
	flag.Parse()

	if strings.TrimSpace(*filePath) == "" {
		exitErr("file path is required")
	}

	format, err := extract.FormatFromFileName(filepath.Base(*filePath))
	if err != nil {
		exitErr("Unsupported file type. Please upload a PDF, DOCX, or TXT file.")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		exitErr(fmt.Sprintf("read file: %v", err))
	}

	text, err := extract.ExtractText(context.Background(), data, format)
	if err != nil {
		exitErr(err.Error())
	}
	if *printText {
		fmt.Println(text)
		return
	}

	if *query == "" {
		exitErr("Missing query")
	}
	if text == "" {
		exitErr("No document text available. Upload a PDF, DOCX, or TXT file first.")
	}

	cfg.QAProvider = strings.ToLower(strings.TrimSpace(*provider))
	cfg.ModelName = strings.TrimSpace(*model)
	if err := cfg.Validate(); err != nil {
		exitErr(err.Error())
	}

	client, err := bootstrap.NewQAClient(cfg)
	if err != nil {
		exitErr(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QATimeoutSeconds)*time.Second)
	defer cancel()

	answer, err := client.Answer(ctx, qa.Input{Question: *query, Context: text})
	if err != nil {
		exitErr(err.Error())
	}

	pretty, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}
	if _, err := os.Stdout.Write(append(pretty, '\n')); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
