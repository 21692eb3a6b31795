package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/canoriz/argparse"
)

type addr struct {
	ip   string
	port string
}

// FromString and Example make *addr an argparse.Parse, no registration needed.
func (a *addr) FromString(s string) error {
	r := strings.Split(s, ":")
	if len(r) < 2 {
		return errors.New("not correct")
	}
	a.ip = r[0]
	a.port = r[1]
	return nil
}

func (a *addr) Example() string {
	return "127.0.0.1:1001"
}

func (a addr) String() string {
	return a.ip + ":" + a.port
}

type Color int

const (
	Red Color = iota
	Blue
	Green
)

type size int

func main() {
	registry := argparse.NewRegistry()
	argparse.RegisterEnum[Color](registry, "red", "blue", "green")
	// sizes accept a k suffix
	argparse.Register(registry, func(s string) (size, error) {
		mult := 1
		if strings.HasSuffix(s, "k") {
			s, mult = strings.TrimSuffix(s, "k"), 1024
		}
		n, err := argparse.Convert[int](registry, s)
		return size(n * mult), err
	})

	args := argparse.New("custom_type", argparse.WithRegistry(registry))
	blockSize := argparse.Keyword[size](args, "sz", "block size").DefaultText("4k")
	source := argparse.Keyword[addr](args, "s,source", "source").DefaultText("127.0.0.1:1001")
	color := argparse.Keyword[Color](args, "c,color", "output color").Default(Red).Implicit("green")
	timeout := argparse.Keyword[time.Duration](args, "t,timeout", "").Default(30 * time.Second)

	add := args.Subcommand("add", "add a file")
	name := argparse.Keyword[string](add, "n", "add file")

	args.Parse()
	args.Print(os.Stdout)

	fmt.Printf("size=%d source=%v color=%d timeout=%v\n",
		blockSize.Value(), source.Value(), color.Value(), timeout.Value())
	if add.IsActive() {
		fmt.Printf("add %s\n", name.Value())
	}
	fmt.Printf("equivalent arguments: %q\n", args.Tokens())
}
