package cpu

import (
	"fmt"
	"io"
	"os"

	"ddp24/word"
)

// LoadFile populates memory from path, a flat sequence of big-endian
// 24-bit words (3 bytes per word, most-significant byte first), starting
// at address 0. Loading stops at EOF or at memory capacity; a short final
// group (fewer than 3 bytes) is discarded. It returns the number of words
// loaded, or a negative value and an error on I/O failure. Processor state
// is left untouched if the file cannot be opened.
func (c *Cpu) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return -1, fmt.Errorf("ddp24: load %s: %w", path, err)
	}
	defer f.Close()
	return c.Load(f)
}

// Load populates memory from r using the same wire format as LoadFile.
func (c *Cpu) Load(r io.Reader) (int, error) {
	var buf [3]byte
	addr := word.Word(0)
	for int(addr) < len(c.Bus.Words) {
		n, err := io.ReadFull(r, buf[:])
		if n == 3 {
			c.Write(addr, word.Word(buf[0])<<16|word.Word(buf[1])<<8|word.Word(buf[2]))
			addr++
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return -1, fmt.Errorf("ddp24: load: %w", err)
		}
		break
	}
	return int(addr), nil
}
