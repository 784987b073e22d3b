package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/cli"
	"github.com/victorbstan/polyvox/store"
)

func usage() {
	fmt.Println("Usage: polyvoxtool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  extract [-decimate=<threshold>] <chunkdir> <cx> <cy> <cz> <lod> <out.glb>")
	fmt.Println("                                           (extract a chunk to glTF, optionally decimated)")
	fmt.Println("  genchunk <w> <h> <d> <fill%> <cx> <cy> <cz> <out-dir>")
	fmt.Println("                                           (generate one chunk of uniform random fill)")
	fmt.Println("  pack <out.pvoxpack> <chunkfile...>       (pack .pvox chunk files into one archive)")
	fmt.Println("  unpack <in.pvoxpack> <out-dir>            (unpack a .pvoxpack into individual .pvox files)")
}

func mustAtoi(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return n
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch os.Args[1] {
	case "extract":
		fs := flag.NewFlagSet("extract", flag.ExitOnError)
		decimateThreshold := fs.Float64("decimate", 0, "collapse edges with normal cosine similarity at or above this threshold")
		if err := fs.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		args := fs.Args()
		if len(args) != 6 {
			usage()
			os.Exit(1)
		}
		coord := store.ChunkCoord{X: int32(mustAtoi(args[1])), Y: int32(mustAtoi(args[2])), Z: int32(mustAtoi(args[3]))}
		lod := int32(mustAtoi(args[4]))
		if err := cli.RunExtract(args[0], coord, lod, float32(*decimateThreshold), args[5], logger); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "genchunk":
		if len(os.Args) != 10 {
			usage()
			os.Exit(1)
		}
		w := int32(mustAtoi(os.Args[2]))
		h := int32(mustAtoi(os.Args[3]))
		d := int32(mustAtoi(os.Args[4]))
		fillPercent, err := strconv.ParseFloat(os.Args[5], 64)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		coord := store.ChunkCoord{
			X: int32(mustAtoi(os.Args[6])),
			Y: int32(mustAtoi(os.Args[7])),
			Z: int32(mustAtoi(os.Args[8])),
		}
		outDir := os.Args[9]
		if err := cli.RunGenChunk(w, h, d, fillPercent, outDir, coord, 1, logger); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "pack":
		if len(os.Args) < 4 {
			usage()
			os.Exit(1)
		}
		if err := cli.RunPack(os.Args[2], os.Args[3:], logger); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "unpack":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		if err := cli.RunUnpack(os.Args[2], os.Args[3], logger); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
