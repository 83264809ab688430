// Command ddp24 drives the DDP-24 core: it loads a binary image, then runs
// it, steps it interactively, or exercises the built-in self-test harness.
// None of its logic belongs to the processor model itself.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ddp24/cpu"
	"ddp24/word"
)

func main() {
	var (
		interactive bool
		tui         bool
		runTests    bool
		dump        bool
		verboseDump bool
		maxCycles   int
	)

	root := &cobra.Command{
		Use:   "ddp24 [program.bin]",
		Short: "DDP-24 emulator — Viking Mars lander guidance computer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runTests {
				os.Exit(runSelfTests())
			}

			var program string
			if len(args) == 1 {
				program = args[0]
			}

			c := cpu.New()
			if program != "" {
				n, err := c.LoadFile(program)
				if err != nil {
					return err
				}
				fmt.Printf("Loaded %d words from %s\n", n, program)
			}

			switch {
			case tui:
				return c.Debug()
			case interactive:
				runREPL(c)
			case program != "":
				if _, err := c.Run(maxCycles); err != nil {
					return err
				}
			default:
				cmd.Usage()
				return fmt.Errorf("no program given and no mode selected")
			}

			if dump {
				if verboseDump {
					c.DumpVerbose(os.Stdout)
				} else {
					c.Dump(os.Stdout)
				}
			}
			return nil
		},
	}

	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "interactive line REPL")
	root.Flags().BoolVar(&tui, "tui", false, "interactive bubbletea debugger")
	root.Flags().BoolVarP(&runTests, "test", "t", false, "run built-in self-tests")
	root.Flags().BoolVarP(&dump, "dump", "d", false, "dump state after execution")
	root.Flags().BoolVarP(&verboseDump, "verbose", "v", false, "use a verbose (spew) dump format with -d")
	root.Flags().IntVar(&maxCycles, "cycles", 0, "cycle budget for run mode; 0 is unbounded")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runSelfTests runs cpu.SelfTest and reports pass/fail, returning the
// failure count as a process exit code — matching the original emulator's
// "-t" contract.
func runSelfTests() int {
	fmt.Println("=== DDP-24 Instruction Tests ===")
	fmt.Println()

	results := cpu.SelfTest()
	failed := 0
	for _, r := range results {
		if r.Passed {
			fmt.Printf("PASS: %s\n", r.Name)
			continue
		}
		fmt.Printf("FAIL: %s (%s)\n", r.Name, r.Detail)
		failed++
	}

	fmt.Printf("\n=== Results: %d passed, %d failed ===\n", len(results)-failed, failed)
	return failed
}

// runREPL implements the original's line-oriented interactive mode:
// s(tep), r(un), d(ump), m(emory) <octal addr>, q(uit).
func runREPL(c *cpu.Cpu) {
	fmt.Println("DDP-24 Interactive Mode. Commands: s(tep), r(un), d(ump), m(emory), q(uit)")
	scanner := bufio.NewScanner(os.Stdin)

	for !c.Halted {
		fmt.Print("ddp24> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		switch line[0] {
		case 's':
			if _, err := c.Step(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Printf("PC=%05o A=%08o B=%08o\n", c.PC, c.A, c.B)

		case 'r':
			if _, err := c.Run(0); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Printf("Halted after %d cycles\n", c.Cycles)

		case 'd':
			c.Dump(os.Stdout)

		case 'm':
			addr, err := strconv.ParseUint(strings.TrimSpace(line[1:]), 8, 15)
			if err != nil {
				fmt.Println("Usage: m <octal_addr>")
				continue
			}
			fmt.Printf("[%05o] = %08o\n", addr, c.Read(word.Word(addr)))

		case 'q':
			return

		default:
			fmt.Println("Unknown command. Use s, r, d, m <addr>, or q")
		}
	}

	if c.Halted {
		fmt.Println("CPU halted.")
		c.Dump(os.Stdout)
	}
}
