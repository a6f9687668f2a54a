package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/karthik-H/httpcat/internal/client"
	"github.com/karthik-H/httpcat/internal/config"
	"github.com/karthik-H/httpcat/internal/download"
	"github.com/karthik-H/httpcat/internal/logging"
	"github.com/karthik-H/httpcat/internal/message"
	"github.com/karthik-H/httpcat/internal/processing"
	"github.com/karthik-H/httpcat/internal/stream"
	"github.com/karthik-H/httpcat/internal/term"
)

var (
	printFlag    string
	verbose      bool
	bodyOnly     bool
	headersOnly  bool
	prettyFlag   string
	streamOutput bool
	downloadMode bool
	resume       bool
	outputPath   string
	timeout      time.Duration
	proxyURL     string
	userAgent    string
	headerArgs   []string
	debug        bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "httpcat [METHOD] URL",
	Short:   "httpcat is a terminal HTTP client with streaming output and resumable downloads",
	Version: Version,
	Args:    cobra.RangeArgs(1, 2),
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		logging.InitLogger(debug)
		cfg, err := config.Load(config.DefaultPath())
		if err != nil {
			term.PrintError(fmt.Sprintf("Config error: %v", err))
			os.Exit(1)
		}
		applyConfigDefaults(cmd, cfg)

		env := term.NewEnvironment()
		if err := run(cmd, args, cfg, env); err != nil {
			term.PrintError(err.Error())
			os.Exit(1)
		}
	}
	rootCmd.Flags().StringVarP(&printFlag, "print", "p", "", "What to print: H/B request headers/body, h/b response headers/body")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the whole exchange (same as --print HBhb)")
	rootCmd.Flags().BoolVarP(&bodyOnly, "body", "b", false, "Print only the response body")
	rootCmd.Flags().BoolVarP(&headersOnly, "headers", "H", false, "Print only the response headers")
	rootCmd.Flags().StringVar(&prettyFlag, "pretty", "", "Output processing: all or none (default: all for terminals)")
	rootCmd.Flags().BoolVarP(&streamOutput, "stream", "S", false, "Stream output line by line")
	rootCmd.Flags().BoolVarP(&downloadMode, "download", "d", false, "Download the response body to a file")
	rootCmd.Flags().BoolVarP(&resume, "continue", "c", false, "Resume an interrupted download (requires --output)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path for --download")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout (eg. 5s, 2m)")
	rootCmd.Flags().StringVar(&proxyURL, "proxy", "", "HTTP/HTTPS proxy URL")
	rootCmd.Flags().StringVarP(&userAgent, "user-agent", "a", "", "User agent")
	rootCmd.Flags().StringArrayVarP(&headerArgs, "header", "t", []string{}, "Request header (like 'Authorization: Bearer x'); repeatable")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("timeout") && cfg.Timeout != 0 {
		timeout = time.Duration(cfg.Timeout)
	}
	if !cmd.Flags().Changed("user-agent") && cfg.UserAgent != "" {
		userAgent = cfg.UserAgent
	}
	if !cmd.Flags().Changed("proxy") && cfg.ProxyURL != "" {
		proxyURL = cfg.ProxyURL
	}
	if !cmd.Flags().Changed("pretty") && cfg.Pretty != "" {
		prettyFlag = cfg.Pretty
	}
	headerArgs = append(cfg.Headers, headerArgs...)
}

func run(cmd *cobra.Command, args []string, cfg *config.Config, env *term.Environment) error {
	method, rawURL := methodAndURL(args)
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	var body []byte
	if !env.StdinIsTTY {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return fmt.Errorf("error reading request body from stdin: %w", err)
		}
		body = data
	}
	if method == "" {
		method = http.MethodGet
		if len(body) > 0 {
			method = http.MethodPost
		}
	}

	req, err := http.NewRequest(method, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	for key, value := range client.ParseHeaderArgs(headerArgs) {
		req.Header.Set(key, value)
	}
	if len(body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := client.New(client.Config{
		Timeout:   timeout,
		ProxyURL:  proxyURL,
		UserAgent: userAgent,
	})

	if downloadMode {
		return runDownload(req, httpClient, env)
	}
	return runExchange(req, body, httpClient, env)
}

func methodAndURL(args []string) (string, string) {
	if len(args) == 2 {
		return strings.ToUpper(args[0]), args[1]
	}
	return "", args[0]
}

func runExchange(req *http.Request, body []byte, httpClient *client.Client, env *term.Environment) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	cfg := stream.BuildConfig{
		Print:      printOptions(env),
		Prettify:   prettify(env),
		Stream:     streamOutput,
		Formatting: processing.DefaultFormatting(),
		Conversion: processing.NewConversion(),
	}
	parts := stream.Build(cfg, env, message.NewRequest(req, body), message.NewResponse(resp))
	return stream.WriteTo(env.Stdout, streamOutput, parts...)
}

func runDownload(req *http.Request, httpClient *client.Client, env *term.Environment) error {
	log := logging.GetLogger("download").With().Str("job", uuid.NewString()).Logger()

	if resume && outputPath == "" {
		term.PrintWarning("--continue has no effect without --output; starting from scratch")
	}

	var outputFile *os.File
	if outputPath != "" {
		f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return fmt.Errorf("error opening output file: %w", err)
		}
		outputFile = f
	}

	dl := download.New(outputFile, resume, env.Stderr)
	dl.PreRequest(req.Header)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// The body goes to the file, so header output moves to stderr
	// and stdout stays clean for -o /dev/stdout style usage.
	headerParts := stream.Build(stream.BuildConfig{
		Print:      stream.PrintOptions{ResponseHeaders: true},
		Prettify:   prettify(env),
		Formatting: processing.DefaultFormatting(),
		Conversion: processing.NewConversion(),
	}, env, nil, message.NewResponse(resp))
	if err := stream.WriteTo(env.Stderr, false, headerParts...); err != nil {
		return err
	}
	fmt.Fprintln(env.Stderr)

	bodyStream, file, err := dl.Start(resp)
	if err != nil {
		dl.Failed()
		return err
	}
	defer file.Close()

	if err := stream.WriteTo(file, false, bodyStream); err != nil {
		dl.Failed()
		return fmt.Errorf("download failed: %w", err)
	}
	dl.Finish()
	log.Debug().Int64("bytes", dl.Status.Downloaded()).Msg("transfer complete")

	if dl.Interrupted() {
		total, _ := dl.Status.TotalSize()
		return fmt.Errorf("incomplete download: size=%d; downloaded=%d", total, dl.Status.Downloaded())
	}
	return nil
}

// printOptions resolves the --print/--verbose/--body/--headers
// surface into the four sub-stream toggles. The default depends on
// where stdout goes: the full response for terminals, body only for
// pipes.
func printOptions(env *term.Environment) stream.PrintOptions {
	switch {
	case printFlag != "":
		return stream.PrintOptions{
			RequestHeaders:  strings.Contains(printFlag, "H"),
			RequestBody:     strings.Contains(printFlag, "B"),
			ResponseHeaders: strings.Contains(printFlag, "h"),
			ResponseBody:    strings.Contains(printFlag, "b"),
		}
	case verbose:
		return stream.PrintOptions{
			RequestHeaders: true, RequestBody: true,
			ResponseHeaders: true, ResponseBody: true,
		}
	case headersOnly:
		return stream.PrintOptions{ResponseHeaders: true}
	case bodyOnly:
		return stream.PrintOptions{ResponseBody: true}
	case env.StdoutIsTTY:
		return stream.PrintOptions{ResponseHeaders: true, ResponseBody: true}
	default:
		return stream.PrintOptions{ResponseBody: true}
	}
}

func prettify(env *term.Environment) bool {
	switch prettyFlag {
	case "all":
		return env.StdoutIsTTY || rootCmd.Flags().Changed("pretty")
	case "none":
		return false
	default:
		return env.StdoutIsTTY
	}
}
