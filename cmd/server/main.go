package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	snlgenerator "github.com/baditaflorin/go_snl_generator"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// SNL generator shared across requests
	generator *snlgenerator.Generator

	// Logger instance
	logger l.Logger
)

// GenerateRequest represents a single-document generation request
type GenerateRequest struct {
	Text string `json:"text"`
}

// BatchRequest represents a multi-document generation request
type BatchRequest struct {
	Documents []string `json:"documents"`
}

// GenerateResponse represents a single-document generation response
type GenerateResponse struct {
	Requirements     []RequirementPayload   `json:"requirements"`
	Actors           []string               `json:"actors"`
	SNLText          string                 `json:"snl_text"`
	FormattedSNL     string                 `json:"formatted_snl"`
	PreprocessedText string                 `json:"preprocessed_text"`
	Stats            StatsPayload           `json:"stats"`
	Error            string                 `json:"error,omitempty"`
	Details          map[string]interface{} `json:"details,omitempty"`
}

// RequirementPayload is the wire form of one requirement
type RequirementPayload struct {
	Text          string `json:"text"`
	Kind          string `json:"kind"`
	SourceOrdinal int    `json:"source_ordinal"`
}

// StatsPayload is the wire form of the run counters
type StatsPayload struct {
	InputSentences  int `json:"input_sentences"`
	RawGenerated    int `json:"raw_generated"`
	UniqueGenerated int `json:"unique_generated"`
	ActorCount      int `json:"actor_count"`
}

// BatchResponse represents a multi-document generation response
type BatchResponse struct {
	Results []GenerateResponse `json:"results"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	parallel := flag.Int("parallel", runtime.NumCPU(), "Number of workers rewriting candidate sentences")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	rulesFile := flag.String("rules-file", "", "YAML file overriding the built-in rule tables (empty = defaults)")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting SNL generation HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"parallel", *parallel,
	)

	// Initialize the generator
	initGenerator(*rulesFile, *parallel, *warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initGenerator builds the shared SNL generator
func initGenerator(rulesFile string, parallel int, warmUp bool) {
	opts := []snlgenerator.Option{
		snlgenerator.WithLogger(logger),
		snlgenerator.WithFastNormalizer(),
		snlgenerator.WithParallel(parallel),
	}
	if rulesFile != "" {
		opts = append(opts, snlgenerator.WithRulesFile(rulesFile))
	}
	if warmUp {
		opts = append(opts, snlgenerator.WithWarmUp())
	}

	var err error
	generator, err = snlgenerator.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize SNL generator", "error", err)
		os.Exit(1)
	}

	logger.Info("SNL generator initialized successfully",
		"warm_up", warmUp,
		"rules_file", rulesFile,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "SNLGeneratorServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/generate":
		handleGenerate(ctx)
	case "/batch":
		handleBatch(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleGenerate handles single-document generation requests
func handleGenerate(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	// Parse request
	var req GenerateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	// Validate request
	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Text is required")
		return
	}

	// Create context with timeout
	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Generate requirements
	result := generator.Generate(c, req.Text)

	// Write response
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, toGenerateResponse(result))
}

// handleBatch handles multi-document generation requests
func handleBatch(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	// Parse request
	var req BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	// Validate request
	if len(req.Documents) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "At least one document is required")
		return
	}

	// Create context with timeout
	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Generate requirements for each document
	results := generator.GenerateBatch(c, req.Documents)

	response := BatchResponse{Results: make([]GenerateResponse, len(results))}
	for i, result := range results {
		response.Results[i] = toGenerateResponse(result)
	}

	// Write response
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// toGenerateResponse converts a generation result to its wire form
func toGenerateResponse(result snlgenerator.Result) GenerateResponse {
	requirements := make([]RequirementPayload, len(result.Requirements))
	for i, req := range result.Requirements {
		requirements[i] = RequirementPayload{
			Text:          req.Text,
			Kind:          req.Kind.String(),
			SourceOrdinal: req.SourceOrdinal,
		}
	}

	return GenerateResponse{
		Requirements:     requirements,
		Actors:           result.Actors,
		SNLText:          result.SNLText,
		FormattedSNL:     result.FormattedSNL,
		PreprocessedText: result.PreprocessedText,
		Stats: StatsPayload{
			InputSentences:  result.Stats.InputSentences,
			RawGenerated:    result.Stats.RawGenerated,
			UniqueGenerated: result.Stats.UniqueGenerated,
			ActorCount:      result.Stats.ActorCount,
		},
		Error:   result.Error,
		Details: result.Details,
	}
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	// Create a logger factory
	factory := l.NewStandardFactory()

	// Configure the logger
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	// Create the logger
	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
