package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/effective-security/xlog"
	"github.com/stokhos-ai/parley/agent"
	"github.com/stokhos-ai/parley/llmfactory"
	"github.com/stokhos-ai/parley/llms"
	"github.com/stokhos-ai/parley/llms/googleai"
	"github.com/stokhos-ai/parley/tools/calculator"
	"github.com/stokhos-ai/parley/tools/websearch"
)

var logger = xlog.NewPackageLogger("github.com/stokhos-ai/parley", "cmd")

func main() {
	var (
		cfgFile = flag.String("cfg", "", "path to the providers YAML config")
		name    = flag.String("name", "Gem", "agent name")
		model   = flag.String("model", "", "model override")
		temp    = flag.Float64("temp", 0.7, "sampling temperature [0,1]")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if *debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.WARNING)
	}

	if err := run(context.Background(), *cfgFile, *name, *model, *temp); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgFile, name, model string, temp float64) error {
	llm, err := newModel(ctx, cfgFile)
	if err != nil {
		return err
	}

	a, err := agent.New(llm, agent.Config{
		Name:        name,
		Model:       model,
		Temperature: temp,
	})
	if err != nil {
		return err
	}

	calc, err := calculator.New()
	if err != nil {
		return err
	}
	a.RegisterTool(calc)

	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		search, err := websearch.New(key)
		if err != nil {
			return err
		}
		a.RegisterTool(search)
	} else {
		logger.KV(xlog.WARNING, "status", "search_disabled", "reason", "TAVILY_API_KEY not set")
	}

	fmt.Printf("%s | chat %s\n", a.String(), a.ChatID())
	fmt.Println("commands: /save <file>, /load <file>, /history, /quit")

	return repl(ctx, a)
}

// newModel builds the backend from the providers config when given, otherwise
// falls back to a Gemini client keyed from the environment.
func newModel(ctx context.Context, cfgFile string) (llms.Model, error) {
	if cfgFile != "" {
		f, err := llmfactory.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		return f.DefaultModel(ctx)
	}

	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("no -cfg given and GEMINI_API_KEY is not set")
	}
	return googleai.New(ctx, key)
}

func repl(ctx context.Context, a *agent.Agent) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := command(ctx, a, line); quit {
				return nil
			}
			continue
		}

		reply, err := a.ProcessTurn(ctx, line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "turn failed:", err)
			continue
		}
		fmt.Printf("%s> %s\n", a.Name(), reply)
	}
}

func command(ctx context.Context, a *agent.Agent, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit", "/sair":
		return true
	case "/save":
		if arg == "" {
			arg = "conversa.json"
		}
		if err := a.SaveHistory(ctx, arg); err != nil {
			fmt.Fprintln(os.Stderr, "save failed:", err)
			break
		}
		fmt.Println("history saved to", arg)
	case "/load":
		if arg == "" {
			arg = "conversa.json"
		}
		if err := a.LoadHistory(ctx, arg); err != nil {
			fmt.Fprintln(os.Stderr, "load failed:", err)
			break
		}
		fmt.Println("history loaded from", arg)
	case "/history":
		for _, msg := range a.History(ctx) {
			fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("15:04:05"), msg.Role, msg.Content)
		}
		fmt.Printf("%d messages, ~%d tokens\n", a.Len(ctx), a.EstimatedTokens(ctx))
	default:
		fmt.Println("unknown command:", cmd)
	}
	return false
}
