package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sensing-garden/trellis/internal/garden"
)

func runDevice(args []string) int {
	if len(args) == 0 {
		return fatal(fmt.Errorf("device: want add, rm or ls"))
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("trellis device "+sub, flag.ExitOnError)
	configPath := fs.String("config", "", "override trellis config path")
	deviceID := fs.String("id", "", "device id")
	_ = fs.Parse(rest)

	_, client, err := newClient(*configPath)
	if err != nil {
		return fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch sub {
	case "add":
		resp, err := client.AddDevice(ctx, *deviceID)
		if err != nil {
			return fatal(err)
		}
		logrus.WithField("device", *deviceID).Info("device added")
		printJSON(resp)
	case "rm":
		resp, err := client.DeleteDevice(ctx, *deviceID)
		if err != nil {
			return fatal(err)
		}
		logrus.WithField("device", *deviceID).Info("device deleted")
		printJSON(resp)
	case "ls":
		page, err := client.FetchDevices(ctx, garden.ListQuery{DeviceID: *deviceID})
		if err != nil {
			return fatal(err)
		}
		printJSON(page)
	default:
		return fatal(fmt.Errorf("device: unknown subcommand %q", sub))
	}
	return 0
}

func runModel(args []string) int {
	if len(args) == 0 {
		return fatal(fmt.Errorf("model: want create or ls"))
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("trellis model "+sub, flag.ExitOnError)
	configPath := fs.String("config", "", "override trellis config path")
	modelID := fs.String("id", "", "model id")
	name := fs.String("name", "", "model name")
	version := fs.String("version", "", "model version")
	description := fs.String("description", "", "model description (optional)")
	_ = fs.Parse(rest)

	_, client, err := newClient(*configPath)
	if err != nil {
		return fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch sub {
	case "create":
		resp, err := client.CreateModel(ctx, garden.CreateModelRequest{
			ModelID:     *modelID,
			Name:        *name,
			Version:     *version,
			Description: *description,
		})
		if err != nil {
			return fatal(err)
		}
		logrus.WithField("model", *modelID).Info("model created")
		printJSON(resp)
	case "ls":
		page, err := client.FetchModels(ctx, garden.ListQuery{ModelID: *modelID})
		if err != nil {
			return fatal(err)
		}
		printJSON(page)
	default:
		return fatal(fmt.Errorf("model: unknown subcommand %q", sub))
	}
	return 0
}
