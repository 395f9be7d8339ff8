// ema-chat is an interactive console client for an OpenAI-style
// /v1/responses endpoint, e.g. a local vLLM server running a gpt-oss
// model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	chat "github.com/koscakluka/ema-chat/core"
	"github.com/koscakluka/ema-chat/core/responses"
	"github.com/koscakluka/ema-chat/internal/config"
	"github.com/koscakluka/ema-chat/internal/ui"
)

const healthCheckTimeout = 5 * time.Second

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		baseURL    = flag.String("base-url", "", "server base URL (overrides the config file)")
		model      = flag.String("model", "", "model name (overrides the config file)")
		noStream   = flag.Bool("no-stream", false, "use non-streaming responses")
		noCode     = flag.Bool("no-code", false, "disable the code interpreter tool")
		noSearch   = flag.Bool("no-search", false, "disable the web search tool")
		fullscreen = flag.Bool("fullscreen", false, "use the full-screen chat interface")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *model != "" {
		cfg.Model = *model
	}

	clientOpts := []responses.ClientOption{}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, responses.WithAPIKey(cfg.APIKey))
	}
	client := responses.NewClient(cfg.BaseURL, cfg.Model, clientOpts...)

	ctx := context.Background()
	healthCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := client.CheckHealth(healthCtx); err != nil {
		log.Fatalf("Server is not reachable: %v\nStart it with e.g.: vllm serve %s", err, cfg.Model)
	}

	tools := []responses.ToolDescriptor{}
	if !*noCode {
		tools = append(tools, responses.CodeInterpreterTool())
	}
	if !*noSearch {
		tools = append(tools, responses.WebSearchTool())
	}

	chatOpts := []chat.Option{
		chat.WithStreaming(!*noStream),
		chat.WithTools(tools...),
	}

	if *fullscreen {
		controller := ui.Start(os.Stdout, ui.Options{})
		session := chat.New(client, append(chatOpts, chat.WithRenderer(controller))...)
		go controller.Loop(ctx, session)
		controller.Wait()
		return
	}

	session := chat.New(client, chatOpts...)
	printBanner(os.Stdout, cfg, session)

	if err := chat.NewREPL(session, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Fatalf("Chat loop failed: %v", err)
	}
}

func printBanner(out *os.File, cfg config.Config, session *chat.Chat) {
	fmt.Fprintf(out, "Chatting with %s at %s\n", cfg.Model, cfg.BaseURL)
	if types := session.ToolTypes(); len(types) > 0 {
		fmt.Fprintf(out, "Tools: %s\n", strings.Join(types, ", "))
	}
	if !session.Streaming() {
		fmt.Fprintln(out, "Streaming: off")
	}
	fmt.Fprint(out, chat.HelpText())
	fmt.Fprintln(out)
}
