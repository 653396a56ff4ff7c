package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
)

func TestKeyValueFillsWidth(t *testing.T) {
	d := NewDocument(32)
	d.Reset()
	d.KeyValue("Subtotal:", "130.00")

	got := string(d.Bytes()[2:]) // skip ESC @
	if got != "Subtotal:"+strings.Repeat(" ", 32-9-6)+"130.00\n" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	d := NewDocument(20)
	d.ItemLine(4, "Michelin Defender LTX 265/70R17", "1,196.00")

	line := strings.TrimSuffix(string(d.Bytes()[2:]), "\n")
	if len(line) != 20 {
		t.Fatalf("line width = %d, want 20: %q", len(line), line)
	}
	if !strings.HasSuffix(line, " 1,196.00") {
		t.Fatalf("total not flush right: %q", line)
	}
}

func TestTextWraps(t *testing.T) {
	d := NewDocument(10)
	d.Text("rotate and balance all four")

	lines := strings.Split(strings.TrimSuffix(string(d.Bytes()[2:]), "\n"), "\n")
	for _, l := range lines {
		if len(l) > 10 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "rotate and balance all four" {
		t.Fatalf("wrapped text lost words: %v", lines)
	}
}

func TestNewRejectsMissingAddress(t *testing.T) {
	if _, err := New(Config{Type: TypeNetwork}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := New(Config{Type: "bluetooth"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
	p, err := New(Config{})
	if err != nil || p.Type() != TypeNone {
		t.Fatalf("empty config should give the null printer: %v", err)
	}
}

func TestNetworkPrinterWrites(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p, err := New(Config{Type: TypeNetwork, Address: ln.Addr().String()})
	if err != nil {
		t.Fatal(err)
	}
	payload := NewDocument(32).Text("hello").PartialCut().Bytes()
	if err := p.Print(context.Background(), payload); err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := <-received; !bytes.Equal(got, payload) {
		t.Fatalf("printer received %q", got)
	}
}
