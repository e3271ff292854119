// Package main provides the interactive terminal client for the
// roshambo server. One goroutine prints server messages while the main
// loop forwards stdin lines; a shared shutdown channel coordinates the
// two directions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "server address (host:port)")
	flag.Parse()

	conn, err := net.DialTimeout("tcp", *addr, 10*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connecting to %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected to server!")

	stdin := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter your username: ")
	if !stdin.Scan() {
		return
	}
	username := strings.TrimSpace(stdin.Text())
	if _, err := fmt.Fprintf(conn, "%s\n", username); err != nil {
		fmt.Fprintf(os.Stderr, "sending username: %v\n", err)
		os.Exit(1)
	}

	// done is closed exactly once by whichever direction ends first.
	done := make(chan struct{})
	var closeOnce sync.Once
	shutdown := func() {
		closeOnce.Do(func() {
			close(done)
			conn.Close()
		})
	}

	// Receive direction: print everything the server sends.
	go func() {
		defer shutdown()
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				fmt.Print(line)
			}
			if err != nil {
				if err != io.EOF {
					select {
					case <-done:
						// local quit, not a server fault
					default:
						fmt.Fprintf(os.Stderr, "\nread error: %v\n", err)
					}
				}
				fmt.Println("\nDisconnected from server")
				return
			}
		}
	}()

	// Send direction: forward stdin lines until quit or disconnect.
	for stdin.Scan() {
		select {
		case <-done:
			return
		default:
		}

		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}

		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			fmt.Fprintf(os.Stderr, "send error: %v\n", err)
			break
		}

		if strings.EqualFold(line, "quit") {
			// Give the goodbye message a moment to arrive.
			time.Sleep(200 * time.Millisecond)
			break
		}
	}

	shutdown()
	fmt.Println("Disconnected.")
}
