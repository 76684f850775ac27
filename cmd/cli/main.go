package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/embercask/ember"
	"github.com/embercask/ember/backup"
	"github.com/embercask/ember/sqlite"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI holds the shell state
type CLI struct {
	conn     *sqlite.Connection
	database string
}

func main() {
	database := flag.String("database", ":memory:", "Database path, or :memory:")
	password := flag.String("password", "", "Encryption key for the database")
	logQuery := flag.Bool("logQuery", false, "Log each query with timing")
	explainQuery := flag.Bool("explainQuery", false, "Log each query's plan")
	sqlFile := flag.String("sqlFile", "", "SQL file to execute (non-interactive)")
	flag.Parse()

	printBanner()

	builder := ember.NewConfigBuilder().
		LogQuery(*logQuery).
		ExplainQuery(*explainQuery)
	if *password != "" {
		builder.Password(*password)
	}
	if *logQuery || *explainQuery {
		logger, err := zap.NewDevelopment()
		if err == nil {
			builder.Logger(logger)
		}
	}

	conn, err := sqlite.Establish(*database, builder.Build())
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(1)
	}
	defer conn.Close()

	if *database == ":memory:" {
		fmt.Printf("%sUsing in-memory database%s\n", SuccessColor, ResetColor)
	} else {
		fmt.Printf("%sUsing database: %s%s\n", SuccessColor, *database, ResetColor)
	}

	cli := &CLI{conn: conn, database: *database}

	if *sqlFile != "" {
		if err := cli.importFile(*sqlFile); err != nil {
			fmt.Printf("%sError importing file: %v%s\n", ErrorColor, err, ResetColor)
			os.Exit(1)
		}
		return
	}

	cli.run()
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s║             ember v%-7s           ║%s\n", BoldColor, PromptColor, Version, ResetColor)
	fmt.Printf("%s%s║   Embedded SQLite Access Layer        ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, .quit to exit")
	fmt.Println()
}

func (cli *CLI) run() {
	reader := bufio.NewReader(os.Stdin)
	var multiLineBuffer strings.Builder

	for {
		fmt.Print(cli.getPrompt(multiLineBuffer.Len() > 0))

		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			return
		}

		input = strings.TrimSuffix(input, "\n")
		input = strings.TrimSuffix(input, "\r")

		if strings.TrimSpace(input) == "" {
			continue
		}

		if multiLineBuffer.Len() == 0 && strings.HasPrefix(input, ".") {
			if cli.handleCommand(input) {
				continue
			}
		}

		// Accumulate until a terminating semicolon
		multiLineBuffer.WriteString(input)
		trimmed := strings.TrimSpace(multiLineBuffer.String())
		if !strings.HasSuffix(trimmed, ";") {
			multiLineBuffer.WriteString(" ")
			continue
		}

		sql := strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
		multiLineBuffer.Reset()
		if sql == "" {
			continue
		}

		cli.execute(sql)
	}
}

func (cli *CLI) execute(sql string) {
	if isRowReturning(sql) {
		result, err := cli.conn.ExecuteForString(sql, " | ")
		if err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return
		}
		if result == "" {
			fmt.Println("(no rows)")
			return
		}
		fmt.Println(result)
		return
	}

	count, err := cli.conn.Execute(sql)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	fmt.Printf("%s✓ %d row(s) affected%s\n", SuccessColor, count, ResetColor)
}

func isRowReturning(sql string) bool {
	head := strings.ToUpper(strings.TrimSpace(sql))
	return strings.HasPrefix(head, "SELECT") ||
		strings.HasPrefix(head, "PRAGMA") ||
		strings.HasPrefix(head, "EXPLAIN") ||
		strings.HasPrefix(head, "WITH")
}

func (cli *CLI) getPrompt(multiLine bool) string {
	if multiLine {
		return fmt.Sprintf("%s  ...>%s ", PromptColor, ResetColor)
	}
	return fmt.Sprintf("%sember>%s ", PromptColor, ResetColor)
}

func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit", ".q":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		cli.conn.Close()
		os.Exit(0)
		return true
	case ".help":
		cli.printHelp()
		return true
	case ".open":
		if len(parts) < 2 {
			fmt.Printf("%sUsage: .open <path or :memory:>%s\n", ErrorColor, ResetColor)
			return true
		}
		conn, err := sqlite.Establish(parts[1], ember.DefaultConfig())
		if err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return true
		}
		cli.conn.Close()
		cli.conn = conn
		cli.database = parts[1]
		fmt.Printf("%s✓ Switched to %s%s\n", SuccessColor, parts[1], ResetColor)
		return true
	case ".tables":
		cli.execute("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
		return true
	case ".pragma":
		if len(parts) < 2 {
			fmt.Printf("%sUsage: .pragma <name>%s\n", ErrorColor, ResetColor)
			return true
		}
		cli.execute("PRAGMA " + parts[1])
		return true
	case ".backup":
		if len(parts) < 2 {
			fmt.Printf("%sUsage: .backup <path or s3://bucket/key>%s\n", ErrorColor, ResetColor)
			return true
		}
		if err := backup.Write(context.Background(), cli.conn, parts[1], nil); err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return true
		}
		fmt.Printf("%s✓ Backup written to %s%s\n", SuccessColor, parts[1], ResetColor)
		return true
	case ".rekey":
		if len(parts) < 2 {
			fmt.Printf("%sUsage: .rekey <new-password>%s\n", ErrorColor, ResetColor)
			return true
		}
		if err := cli.conn.ChangePassword(parts[1]); err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return true
		}
		fmt.Printf("%s✓ Database re-keyed%s\n", SuccessColor, ResetColor)
		return true
	default:
		fmt.Printf("%sUnknown command: %s%s\n", ErrorColor, parts[0], ResetColor)
		return true
	}
}

func (cli *CLI) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  .help              Show this help")
	fmt.Println("  .open <path>       Close the current database and open another")
	fmt.Println("  .tables            List tables")
	fmt.Println("  .pragma <name>     Show a pragma value")
	fmt.Println("  .backup <dest>     Snapshot the database to a path or S3 URL")
	fmt.Println("  .rekey <password>  Re-encrypt the database")
	fmt.Println("  .quit              Exit")
	fmt.Println()
	fmt.Println("SQL statements end with a semicolon and may span lines.")
}

func (cli *CLI) importFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return cli.conn.BatchExecute(string(content))
}
