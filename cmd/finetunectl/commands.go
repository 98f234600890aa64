package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/tunewell/finetune-go/internal/jsonl"
	"github.com/tunewell/finetune-go/internal/tokens"
	"github.com/tunewell/finetune-go/pkg/finetune"
)

func runList(ctx context.Context, client *finetune.Client) error {
	list, err := client.ListFineTunes(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSTATUS\tFINE-TUNED MODEL\tCREATED")
	for _, ft := range list.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ft.ID, ft.Model, ft.Status, ft.FineTunedModel, formatUnix(ft.CreatedAt))
	}
	return w.Flush()
}

func runCreate(ctx context.Context, client *finetune.Client, trainingFile, model string) error {
	ft, err := client.CreateFineTune(ctx, finetune.CreateFineTuneRequest{
		TrainingFile: trainingFile,
		Model:        model,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s (model %s, status %s)\n", ft.ID, ft.Model, ft.Status)
	return nil
}

func runGet(ctx context.Context, client *finetune.Client, id string) error {
	ft, err := client.RetrieveFineTune(ctx, id)
	if err != nil {
		return err
	}
	return printFlat(ft)
}

func runCancel(ctx context.Context, client *finetune.Client, id string) error {
	ft, err := client.CancelFineTune(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("cancelled %s (status %s)\n", ft.ID, ft.Status)
	return nil
}

func runEvents(ctx context.Context, client *finetune.Client, id string) error {
	events, err := client.ListFineTuneEvents(ctx, id, false)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tLEVEL\tMESSAGE")
	for _, ev := range events.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\n", formatUnix(ev.CreatedAt), ev.Level, ev.Message)
	}
	return w.Flush()
}

func runFiles(ctx context.Context, client *finetune.Client) error {
	list, err := client.ListFiles(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPURPOSE\tBYTES\tCREATED")
	for _, f := range list.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			f.ID, f.Filename, f.Purpose, f.Bytes, formatUnix(f.CreatedAt))
	}
	return w.Flush()
}

func runUpload(ctx context.Context, client *finetune.Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	file, err := client.UploadFile(ctx, "fine-tune", filepath.Base(path), f)
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %s as %s (%d bytes)\n", path, file.ID, file.Bytes)
	return nil
}

func runPrepare(path, model string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := jsonl.Read(f)
	if err != nil {
		return err
	}

	total, err := tokens.NewEstimator().CountRecords(model, records)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d records, ~%d tokens for model %s\n", path, len(records), total, model)
	return nil
}

func runModels(ctx context.Context, client *finetune.Client) error {
	list, err := client.ListModels(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNED BY\tCREATED")
	for _, m := range list.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.OwnedBy, formatUnix(m.Created))
	}
	return w.Flush()
}

// printFlat renders any API value as sorted flattened key/value lines,
// the flat view the wrapper operations share.
func printFlat(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	flat := finetune.Flatten(decoded)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%v\n", k, flat[k])
	}
	return w.Flush()
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
