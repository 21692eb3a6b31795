package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/canoriz/argparse"
)

func main() {
	// declare arguments on a schema, every declaration returns a typed handle
	// supported types: every int, uint and float width, bool, string,
	// time.Duration, slices of them, and types implementing argparse.Parse
	args := argparse.New("example")
	host := argparse.Keyword[string](args, "h,host", "hostname").Default("localhost")
	port := argparse.Keyword[string](args, "p,port", "port").Default("80")
	num := argparse.Keyword[int](args, "n,num", "number of connections").Optional()
	ratio := argparse.Keyword[float64](args, "ratio", "").Default(3.14159)
	tcp := argparse.Flag(args, "t,tcp", "use tcp")
	udp := argparse.Flag(args, "u,udp", "use udp")
	names := argparse.Keyword[[]string](args, "names", "names").DefaultText("alice,bob")
	index := argparse.Keyword[[]int](args, "i,index", "").DefaultText("1,2,3")

	// a post parse checker, return error if none of tcp or udp is enabled,
	// Parse() will exit and print usage, ParseArgs() will return this error
	args.Checker(func(*argparse.Args) error {
		if tcp.Value() == udp.Value() {
			return errors.New("exactly one of tcp or udp must be enabled")
		}
		return nil
	})

	// parse []string
	err := args.ParseArgs(strings.Split(
		"-h host.com -n 70 -i 1,3,5 -t --names cindy,david", " ",
	))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("parse []string")
	args.Print(os.Stdout)

	// parse command line arguments
	args.Parse()
	fmt.Println("parse command line")
	fmt.Printf("host=%s port=%s ratio=%v names=%v index=%v\n",
		host.Value(), port.Value(), ratio.Value(), names.Value(), index.Value())
	if n, ok := num.Lookup(); ok {
		fmt.Printf("num=%d\n", n)
	}
}
