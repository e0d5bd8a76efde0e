package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"soroban/internal/deck"
)

// ============================================================
// Bridge Command
// ============================================================

// Максимальный размер одной строки запроса.
const bridgeLineLimit = 1 << 20

// Превью номеров в ответе ограничено как и в HTTP-сервисе.
const maxBridgePreview = 100

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve deck requests over stdin/stdout",
	Long: `Read one JSON deck config per line from stdin and write one JSON
response per line to stdout. Meant for embedding soroban into other
tooling without running the HTTP service.

Request lines use the same fields as the generate config file; the
response carries the rendered cards or an "error" field. Bad input
never stops the loop.

Example:
  echo '{"range": "0-9"}' | soroban bridge`,
	Args: cobra.NoArgs,
	RunE: runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
}

type bridgeResponse struct {
	Cards   []deck.Card `json:"cards,omitempty"`
	Count   int         `json:"count,omitempty"`
	Numbers []string    `json:"numbers,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func runBridge(cmd *cobra.Command, args []string) error {
	return bridgeLoop(cmd.InOrStdin(), cmd.OutOrStdout())
}

// bridgeLoop обрабатывает запросы построчно до конца входа.
// Любая ошибка запроса уходит в ответ, а не останавливает цикл:
// слишком длинная строка дочитывается до перевода строки и
// отвечается ошибкой.
func bridgeLoop(in io.Reader, out io.Writer) error {
	reader := bufio.NewReaderSize(in, 64*1024)
	encoder := json.NewEncoder(out)
	for {
		line, overflow, err := readRequestLine(reader)
		if overflow {
			log.Printf("[BRIDGE] Request line over %d bytes dropped", bridgeLineLimit)
			if encErr := encoder.Encode(bridgeResponse{Error: fmt.Sprintf("request line exceeds %d bytes", bridgeLineLimit)}); encErr != nil {
				return fmt.Errorf("write response: %w", encErr)
			}
		} else if trimmed := strings.TrimSpace(line); trimmed != "" {
			if encErr := encoder.Encode(handleBridgeLine(trimmed)); encErr != nil {
				return fmt.Errorf("write response: %w", encErr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}
	}
}

// readRequestLine читает строку целиком; строки длиннее лимита
// дочитываются до конца и помечаются как переполненные.
func readRequestLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	overflow := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !overflow {
			buf = append(buf, chunk...)
			if len(buf) > bridgeLineLimit {
				overflow = true
				buf = nil
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(buf), overflow, err
	}
}

func handleBridgeLine(line string) bridgeResponse {
	cfg := deck.DefaultConfig()
	if err := json.Unmarshal([]byte(line), &cfg); err != nil {
		log.Printf("[BRIDGE] Decode error: %v", err)
		return bridgeResponse{Error: "invalid JSON request: " + err.Error()}
	}

	built, err := deck.Build(cfg)
	if err != nil {
		log.Printf("[BRIDGE] Build error: %v", err)
		return bridgeResponse{Error: err.Error()}
	}

	numbers := built.Numbers()
	if len(numbers) > maxBridgePreview {
		numbers = numbers[:maxBridgePreview]
	}
	return bridgeResponse{
		Cards:   built.Cards,
		Count:   len(built.Cards),
		Numbers: numbers,
	}
}
