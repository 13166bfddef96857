package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/kongbytes/arp-scan-go/internal/durationx"
	"github.com/kongbytes/arp-scan-go/internal/iface"
	"github.com/kongbytes/arp-scan-go/internal/model"
	"github.com/kongbytes/arp-scan-go/internal/obslog"
	"github.com/kongbytes/arp-scan-go/internal/orchestrator"
	"github.com/kongbytes/arp-scan-go/internal/output"
	"github.com/kongbytes/arp-scan-go/internal/timing"
	"github.com/kongbytes/arp-scan-go/internal/vendordb"
)

func main() {
	os.Exit(run())
}

// run does the work of main and returns a process exit code, so defers
// further down the call chain (capture handle close, etc.) still fire
// before the process actually exits.
func run() int {
	interfaceName := flag.String("i", "", "Network interface to scan from")
	flag.StringVar(interfaceName, "interface", "", "Network interface to scan from")
	network := flag.String("n", "", "Comma-separated list of CIDRs/IPs to scan")
	flag.StringVar(network, "network", "", "Comma-separated list of CIDRs/IPs to scan")
	file := flag.String("f", "", "File with one CIDR/IP per line")
	flag.StringVar(file, "file", "", "File with one CIDR/IP per line")
	timeoutFlag := flag.String("t", "", "Drain timeout (e.g. 500, 2s, 1m)")
	flag.StringVar(timeoutFlag, "timeout", "", "Drain timeout (e.g. 500, 2s, 1m)")
	intervalFlag := flag.String("I", "", "Inter-request interval")
	flag.StringVar(intervalFlag, "interval", "", "Inter-request interval")
	bandwidth := flag.Uint64("B", 0, "Bit-rate cap, in bits per second")
	flag.Uint64Var(bandwidth, "bandwidth", 0, "Bit-rate cap, in bits per second")
	retryCount := flag.Int("r", -1, "Retry passes")
	flag.IntVar(retryCount, "retry", -1, "Retry passes")
	random := flag.Bool("R", false, "Randomize per-pass target ordering")
	flag.BoolVar(random, "random", false, "Randomize per-pass target ordering")
	sourceIP := flag.String("S", "", "Override the ARP spa field")
	flag.StringVar(sourceIP, "source-ip", "", "Override the ARP spa field")
	destMAC := flag.String("M", "", "Override the Ethernet destination MAC")
	flag.StringVar(destMAC, "dest-mac", "", "Override the Ethernet destination MAC")
	sourceMAC := flag.String("source-mac", "", "Override the Ethernet source MAC")
	vlan := flag.Int("Q", -1, "Emit 802.1Q-tagged frames with this VLAN id")
	flag.IntVar(vlan, "vlan", -1, "Emit 802.1Q-tagged frames with this VLAN id")
	numeric := flag.Bool("numeric", false, "Disable reverse-DNS resolution")
	profileFlag := flag.String("p", "", "Timing profile: default, fast, stealth, chaos")
	flag.StringVar(profileFlag, "profile", "", "Timing profile: default, fast, stealth, chaos")
	ouiFile := flag.String("oui-file", "", "Override the OUI vendor database path")
	hwType := flag.Int("hw-type", -1, "Override the ARP htype field")
	hwAddrLen := flag.Int("hw-addr", -1, "Override the ARP hlen field")
	protoType := flag.Int("proto-type", -1, "Override the ARP ptype field")
	protoAddrLen := flag.Int("proto-addr", -1, "Override the ARP plen field")
	arpOp := flag.Int("arp-op", -1, "Override the ARP operation field")
	outputFormat := flag.String("o", "plain", "Output format: plain, json, yaml, csv")
	flag.StringVar(outputFormat, "output", "plain", "Output format: plain, json, yaml, csv")
	list := flag.Bool("l", false, "List interfaces and exit")
	flag.BoolVar(list, "list", false, "List interfaces and exit")
	logLevel := flag.String("log-level", "info", "Logging level: debug, info, warn, error")
	logJSON := flag.Bool("log-json", false, "Emit logs as JSON instead of text")
	flag.Parse()

	logger, err := obslog.New(*logLevel, *logJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *list {
		return listInterfaces()
	}

	if err := iface.RequireRoot(os.Geteuid()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *network != "" && *file != "" {
		fmt.Fprintln(os.Stderr, "-n/--network and -f/--file are mutually exclusive")
		return 1
	}
	if *intervalFlag != "" && *bandwidth != 0 {
		fmt.Fprintln(os.Stderr, "-I/--interval and -B/--bandwidth are mutually exclusive")
		return 1
	}

	cidrs, err := resolveCIDRs(*network, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(cidrs) == 0 {
		fmt.Fprintln(os.Stderr, "no target network specified: use -n/--network or -f/--file")
		return 1
	}

	selected, sourceIPv4, _, err := iface.Select(*interfaceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	options, err := buildOptions(buildOptionsArgs{
		cidrs:        cidrs,
		timeout:      *timeoutFlag,
		interval:     *intervalFlag,
		bandwidth:    *bandwidth,
		retryCount:   *retryCount,
		random:       *random,
		sourceIP:     *sourceIP,
		destMAC:      *destMAC,
		sourceMAC:    *sourceMAC,
		vlan:         *vlan,
		numeric:      *numeric,
		profile:      *profileFlag,
		ouiFile:      *ouiFile,
		hwType:       *hwType,
		hwAddrLen:    *hwAddrLen,
		protoType:    *protoType,
		protoAddrLen: *protoAddrLen,
		arpOp:        *arpOp,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if options.SourceIPv4 == nil {
		options.SourceIPv4 = sourceIPv4
	}

	format, err := parseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	vendors := vendordb.Load(options.OUIFilePath)

	outcome, err := orchestrator.Run(selected.Name, selected.HardwareAddr, options.SourceIPv4, cidrs, options, vendors, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result := output.Result{
		Summary:    outcome.Summary,
		Estimation: outcome.Estimation,
		Targets:    outcome.Targets,
	}
	if err := output.Write(format, result, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func listInterfaces() int {
	infos, err := iface.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, info := range infos {
		state := "down"
		if info.Up {
			state = "up"
		}
		fmt.Printf("%-12s %-6s mac=%-17s ipv4=%s\n", info.Name, state, info.MAC, info.IPv4)
	}
	return 0
}

func resolveCIDRs(network, file string) ([]net.IPNet, error) {
	var raw []string
	switch {
	case network != "":
		raw = strings.Split(network, ",")
	case file != "":
		contents, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				raw = append(raw, line)
			}
		}
	default:
		return nil, nil
	}

	cidrs := make([]net.IPNet, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		cidr, err := parseCIDROrIP(entry)
		if err != nil {
			return nil, err
		}
		cidrs = append(cidrs, cidr)
	}
	return cidrs, nil
}

func parseCIDROrIP(entry string) (net.IPNet, error) {
	if strings.Contains(entry, "/") {
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return net.IPNet{}, fmt.Errorf("invalid CIDR %q: %w", entry, err)
		}
		return *network, nil
	}

	ip := net.ParseIP(entry)
	if ip == nil {
		return net.IPNet{}, fmt.Errorf("invalid IP or CIDR %q", entry)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return net.IPNet{}, fmt.Errorf("%q is not an IPv4 address", entry)
	}
	return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
}

func parseFormat(value string) (model.Format, error) {
	switch strings.ToLower(value) {
	case "", "plain":
		return model.FormatPlain, nil
	case "json":
		return model.FormatJSON, nil
	case "yaml":
		return model.FormatYAML, nil
	case "csv":
		return model.FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

type buildOptionsArgs struct {
	cidrs        []net.IPNet
	timeout      string
	interval     string
	bandwidth    uint64
	retryCount   int
	random       bool
	sourceIP     string
	destMAC      string
	sourceMAC    string
	vlan         int
	numeric      bool
	profile      string
	ouiFile      string
	hwType       int
	hwAddrLen    int
	protoType    int
	protoAddrLen int
	arpOp        int
}

func buildOptions(args buildOptionsArgs) (*model.ScanOptions, error) {
	profile, err := parseProfile(args.profile)
	if err != nil {
		return nil, err
	}
	defaults := timing.Defaults(profile)

	options := &model.ScanOptions{
		NetworkRange:     args.cidrs,
		Profile:          profile,
		RetryCount:       defaults.RetryCount,
		TimeoutMs:        defaults.TimeoutMs,
		Timing:           model.IntervalTiming{Milliseconds: defaults.IntervalMs},
		RandomizeTargets: defaults.Randomize,
		ResolveHostname:  defaults.ResolveHostname,
		OUIFilePath:      args.ouiFile,
	}

	if args.timeout != "" {
		ms, err := durationx.Parse(args.timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid -t/--timeout: %w", err)
		}
		options.TimeoutMs = ms
	}

	switch {
	case args.interval != "":
		ms, err := durationx.Parse(args.interval)
		if err != nil {
			return nil, fmt.Errorf("invalid -I/--interval: %w", err)
		}
		options.Timing = model.IntervalTiming{Milliseconds: ms}
	case args.bandwidth != 0:
		options.Timing = model.BandwidthTiming{BitsPerSecond: args.bandwidth}
	}

	if args.retryCount >= 0 {
		options.RetryCount = args.retryCount
	}
	if args.random {
		options.RandomizeTargets = true
	}
	if args.numeric {
		options.ResolveHostname = false
	}

	if args.sourceIP != "" {
		ip := net.ParseIP(args.sourceIP)
		if ip == nil || ip.To4() == nil {
			return nil, fmt.Errorf("invalid -S/--source-ip %q", args.sourceIP)
		}
		options.SourceIPv4 = ip.To4()
	}
	if args.destMAC != "" {
		mac, err := net.ParseMAC(args.destMAC)
		if err != nil {
			return nil, fmt.Errorf("invalid -M/--dest-mac: %w", err)
		}
		options.DestinationMAC = mac
	}
	if args.sourceMAC != "" {
		mac, err := net.ParseMAC(args.sourceMAC)
		if err != nil {
			return nil, fmt.Errorf("invalid --source-mac: %w", err)
		}
		options.SourceMAC = mac
	}
	if args.vlan >= 0 {
		vid := uint16(args.vlan)
		options.VLANID = &vid
	}

	if err := applyUint16Override(&options.HwType, args.hwType, "--hw-type"); err != nil {
		return nil, err
	}
	if err := applyUint8Override(&options.HwAddrLen, args.hwAddrLen, "--hw-addr"); err != nil {
		return nil, err
	}
	if err := applyUint16Override(&options.ProtoType, args.protoType, "--proto-type"); err != nil {
		return nil, err
	}
	if err := applyUint8Override(&options.ProtoAddrLen, args.protoAddrLen, "--proto-addr"); err != nil {
		return nil, err
	}
	if err := applyUint16Override(&options.ArpOperation, args.arpOp, "--arp-op"); err != nil {
		return nil, err
	}

	return options, nil
}

func applyUint16Override(dst **uint16, value int, flagName string) error {
	if value < 0 {
		return nil
	}
	if value > 0xFFFF {
		return fmt.Errorf("%s out of range: %d", flagName, value)
	}
	v := uint16(value)
	*dst = &v
	return nil
}

func applyUint8Override(dst **uint8, value int, flagName string) error {
	if value < 0 {
		return nil
	}
	if value > 0xFF {
		return fmt.Errorf("%s out of range: %d", flagName, value)
	}
	v := uint8(value)
	*dst = &v
	return nil
}

func parseProfile(value string) (model.Profile, error) {
	switch strings.ToLower(value) {
	case "", "default":
		return model.ProfileDefault, nil
	case "fast":
		return model.ProfileFast, nil
	case "stealth":
		return model.ProfileStealth, nil
	case "chaos":
		return model.ProfileChaos, nil
	default:
		return "", fmt.Errorf("unknown profile %q", value)
	}
}
