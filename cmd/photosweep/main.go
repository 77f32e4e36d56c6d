// Command photosweep captures LED duty-cycle / photodiode-ADC telemetry
// from a serial device for a fixed wall-clock window, writes the parsed
// samples to CSV, and renders them as two side-by-side PNG line charts.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/luhtfiimanal/photosweep/capture"
	"github.com/luhtfiimanal/photosweep/chart"
	"github.com/luhtfiimanal/photosweep/export"
	"github.com/luhtfiimanal/photosweep/serial"
)

func main() {
	var (
		port        string
		baudRate    int
		stopBits    int
		readTimeout time.Duration
		duration    time.Duration
		csvPath     string
		chartPath   string
		chartWidth  float64
		chartHeight float64
	)

	app := &cli.App{
		Name:    "photosweep",
		Usage:   "capture duty-cycle and ADC telemetry from a serial device, save CSV and charts",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "port",
				Aliases:     []string{"p"},
				Usage:       "serial device path",
				Destination: &port,
				Required:    true,
			},
			&cli.IntFlag{
				Name:        "baud",
				Usage:       "baud rate",
				Destination: &baudRate,
				Value:       4800,
			},
			&cli.IntFlag{
				Name:        "stopbits",
				Usage:       "stop bits (1 or 2)",
				Destination: &stopBits,
				Value:       1,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "max wait per read attempt",
				Destination: &readTimeout,
				Value:       2 * time.Second,
			},
			&cli.DurationFlag{
				Name:        "duration",
				Aliases:     []string{"d"},
				Usage:       "capture window length",
				Destination: &duration,
				Value:       60 * time.Second,
			},
			&cli.StringFlag{
				Name:        "csv",
				Usage:       "output CSV path",
				Destination: &csvPath,
				Value:       "photosweep.csv",
			},
			&cli.StringFlag{
				Name:        "chart",
				Usage:       "output chart PNG path",
				Destination: &chartPath,
				Value:       "photosweep.png",
			},
			&cli.Float64Flag{
				Name:        "width",
				Aliases:     []string{"W"},
				Usage:       "chart canvas width in points",
				Destination: &chartWidth,
			},
			&cli.Float64Flag{
				Name:        "height",
				Aliases:     []string{"H"},
				Usage:       "chart canvas height in points",
				Destination: &chartHeight,
			},
		},
		Action: func(c *cli.Context) error {
			reader, err := serial.Open(serial.Config{
				Device:      port,
				BaudRate:    baudRate,
				ByteSize:    8,
				StopBits:    stopBits,
				ReadTimeout: readTimeout,
			})
			if err != nil {
				return fmt.Errorf("open %s: %w", port, err)
			}

			slog.Info("capturing", "port", port, "baud", baudRate, "duration", duration)
			buf, err := capture.Capture(reader, duration)
			if err != nil {
				return fmt.Errorf("capture: %w", err)
			}
			slog.Info("capture complete", "lines", len(buf.Lines))

			ds, err := capture.Parse(buf)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if err := export.WriteFile(csvPath, ds); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := chart.Render(ds, chart.Options{
				Path:   chartPath,
				Width:  chartWidth,
				Height: chartHeight,
			}); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			slog.Info("done", "records", len(ds), "csv", csvPath, "chart", chartPath)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("photosweep", "err", err)
		os.Exit(1)
	}
}
