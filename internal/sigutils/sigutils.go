package sigutils

import (
	_ "embed"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return gitHash
}

// CmdArgs carries the parsed command line. Flags override config file
// values so a single deployment image can serve several intersections.
type CmdArgs struct {
	ConfigPath    string
	Identifier    string
	TransportPath string
	SimulateLink  bool
}

func ProcessCmdArgs() CmdArgs {
	help := flag.Bool("help", false, "Show Help Window")
	version := flag.Bool("version", false, "Show Version")
	configPath := flag.String("config", "", "Path to the YAML config file. Defaults to built-in values")
	identifier := flag.String("id", "", "Set the identifier of the controller. Defaults to random string")
	transportPath := flag.String("transport", "", "Override the serial transport path from the config")
	simulateLink := flag.Bool("simulatelink", false, "Run without a serial device attached, commands are logged only")

	flag.Parse()

	if *version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}

	if *help {
		fmt.Println("Usage: ./signalctl [OPTIONS]")
		fmt.Println("Traffic Light Control")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("License:")
		fmt.Println("	Copyright (c) 2025 All Rights Reserved")
		os.Exit(0)
	}

	return CmdArgs{
		ConfigPath:    *configPath,
		Identifier:    *identifier,
		TransportPath: *transportPath,
		SimulateLink:  *simulateLink,
	}
}

// Environment variables mirroring the flags, so a .env file can configure
// a deployment
const (
	ENV_CONFIG       = "SIGNALCTL_CONFIG"
	ENV_ID           = "SIGNALCTL_ID"
	ENV_TRANSPORT    = "SIGNALCTL_TRANSPORT"
	ENV_SIMULATELINK = "SIGNALCTL_SIMULATELINK"
)

// ApplyEnv fills in arguments left unset on the command line from the
// environment. Explicit flags win over environment variables.
func (args *CmdArgs) ApplyEnv() {
	if args.ConfigPath == "" {
		args.ConfigPath = os.Getenv(ENV_CONFIG)
	}
	if args.Identifier == "" {
		args.Identifier = os.Getenv(ENV_ID)
	}
	if args.TransportPath == "" {
		args.TransportPath = os.Getenv(ENV_TRANSPORT)
	}
	if !args.SimulateLink {
		if simulate, err := strconv.ParseBool(os.Getenv(ENV_SIMULATELINK)); err == nil {
			args.SimulateLink = simulate
		}
	}
}

var localIP string //local string, not to be accessed anywhere

func GetLocalIP() string {
	if localIP == "" {
		conn, err := net.DialTCP("tcp4", nil, &net.TCPAddr{IP: []byte{8, 8, 8, 8}, Port: 53})
		if err != nil {
			return "127.0.0.1"
		}
		defer conn.Close()
		localIP = strings.Split(conn.LocalAddr().String(), ":")[0]
	}
	return localIP
}
