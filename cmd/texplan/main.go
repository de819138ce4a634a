// Command texplan prints how a legacy texture would be realized on the
// native backend: its map mode, primary image, staging buffers and views.
//
// Nothing is allocated. texplan builds the texture against a dry-run
// device that applies the native backend's limits and memory budget.
//
//	texplan -type cube -format A8R8G8B8 -width 256 -pool managed
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/legacytex"
	"github.com/gogpu/legacytex/backend/native"
	"github.com/gogpu/legacytex/format"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "texplan: %v\n", err)
		os.Exit(1)
	}
}

var resourceTypes = map[string]legacytex.ResourceType{
	"surface": legacytex.ResourceSurface,
	"texture": legacytex.ResourceTexture,
	"cube":    legacytex.ResourceCubeTexture,
	"volume":  legacytex.ResourceVolumeTexture,
}

var pools = map[string]legacytex.Pool{
	"default":   legacytex.PoolDefault,
	"managed":   legacytex.PoolManaged,
	"systemmem": legacytex.PoolSystemMem,
	"scratch":   legacytex.PoolScratch,
}

var usages = map[string]legacytex.Usage{
	"rt":        legacytex.UsageRenderTarget,
	"ds":        legacytex.UsageDepthStencil,
	"writeonly": legacytex.UsageWriteOnly,
	"dynamic":   legacytex.UsageDynamic,
	"automip":   legacytex.UsageAutoGenMipMap,
	"dmap":      legacytex.UsageDMap,
}

func parseUsage(s string) (legacytex.Usage, error) {
	var usage legacytex.Usage
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		u, ok := usages[name]
		if !ok {
			return 0, errors.Newf("unknown usage %q", name)
		}
		usage |= u
	}
	return usage, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("texplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		rtype    = fs.String("type", "texture", "resource type: surface, texture, cube or volume")
		fmtName  = fs.String("format", "A8R8G8B8", "legacy format name")
		width    = fs.Uint("width", 256, "width in pixels")
		height   = fs.Uint("height", 0, "height in pixels (defaults to width)")
		depth    = fs.Uint("depth", 1, "depth of volume textures")
		mips     = fs.Uint("mips", 0, "mip levels (0 selects the full chain)")
		pool     = fs.String("pool", "default", "pool: default, managed, systemmem or scratch")
		usage    = fs.String("usage", "", "comma separated usage: rt, ds, writeonly, dynamic, automip, dmap")
		samples  = fs.Uint("samples", 0, "multisample count")
		lod      = fs.Uint("lod", 0, "LOD clamp applied to the sampled view of managed textures")
		budgetMB = fs.Int("budget", native.DefaultMaxMemoryMB, "video memory budget in MB")
		linear   = fs.Bool("linear", false, "allow linear tiling fallback")
		verbose  = fs.Bool("v", false, "log texture construction to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rt, ok := resourceTypes[strings.ToLower(*rtype)]
	if !ok {
		return errors.Newf("unknown resource type %q", *rtype)
	}
	f, ok := format.Parse(*fmtName)
	if !ok {
		return errors.Newf("unknown format %q", *fmtName)
	}
	p, ok := pools[strings.ToLower(*pool)]
	if !ok {
		return errors.Newf("unknown pool %q", *pool)
	}
	u, err := parseUsage(*usage)
	if err != nil {
		return err
	}
	if *height == 0 {
		*height = *width
	}

	if *verbose {
		legacytex.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer legacytex.SetLogger(nil)
	}

	limits := native.DefaultLimits()
	limits.LinearTiling = *linear
	dev := newDryRunDevice(limits, *budgetMB)

	desc := &legacytex.TextureDescriptor{
		Width:       uint32(*width),  //nolint:gosec // G115: flag values are small
		Height:      uint32(*height), //nolint:gosec // G115: flag values are small
		Depth:       uint32(*depth),  //nolint:gosec // G115: flag values are small
		MipLevels:   uint32(*mips),   //nolint:gosec // G115: flag values are small
		Format:      f,
		Pool:        p,
		Usage:       u,
		MultiSample: legacytex.MultisampleType(*samples), //nolint:gosec // G115: flag values are small
	}
	tex, err := legacytex.NewTexture(dev, desc, rt, legacytex.WithLabel("plan"))
	if err != nil {
		return err
	}
	defer tex.Destroy()

	if err := tex.EnsureAllBuffers(); err != nil {
		return err
	}
	if tex.Descriptor().MultiSample.SampleCount() > 1 {
		if _, err := tex.ResolveImage(); err != nil {
			return err
		}
	}
	views, err := tex.Views()
	if err != nil {
		return err
	}
	if *lod > 0 {
		if err := tex.RecreateSampledView(uint32(*lod)); err != nil { //nolint:gosec // G115: flag values are small
			return err
		}
	}

	return printPlan(stdout, tex, views, dev)
}

func printPlan(w io.Writer, tex *legacytex.Texture, views *legacytex.ViewSet, dev *dryRunDevice) error {
	d := tex.Descriptor()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "texture\t%s %s %dx%dx%d, %d layers, %d mips, pool %s\n",
		d.Format, tex.ResourceType(), d.Width, d.Height, d.Depth, d.ArraySize, d.MipLevels, d.Pool)
	fmt.Fprintf(tw, "map mode\t%s\n", tex.MapMode())
	fmt.Fprintf(tw, "fixup\t%t\n", tex.RequiresFixup())
	fmt.Fprintf(tw, "shadow\t%t\n", tex.IsShadow())
	fmt.Fprintf(tw, "memory\t%d bytes\n", tex.MemoryConsumption())

	for _, img := range dev.images {
		info := img.info
		fmt.Fprintf(tw, "image\t%s: %v %dx%dx%d, %d layers, %d mips, %d samples, tiling %s, layout %s, usage %#x\n",
			info.Label, info.Format, info.Extent.Width, info.Extent.Height, info.Extent.DepthOrArrayLayers,
			info.ArrayLayers, info.MipLevels, info.SampleCount, info.Tiling, info.InitialLayout, uint32(info.Usage))
	}
	if views != nil {
		fmt.Fprintf(tw, "layouts\trender target %s, depth %s\n", views.RenderTargetLayout(), views.DepthLayout())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nsubresources:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUB\tLAYER\tMIP\tEXTENT\tBUFFER\tCOPY")
	for i := range tex.CountSubresources() {
		sub := tex.SubresourceFromIndex(tex.FormatMapping().Aspect, i)
		ext := tex.MipExtent(i)
		var bufSize, copySize uint64
		if b := tex.MappingBuffer(i); b != nil {
			bufSize = b.Size()
		}
		if b := tex.CopyBuffer(i); b != nil {
			copySize = b.Size()
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%dx%dx%d\t%d\t%d\n",
			i, sub.ArrayLayer, sub.MipLevel, ext.Width, ext.Height, ext.DepthOrArrayLayers, bufSize, copySize)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	live := dev.liveViews()
	fmt.Fprintf(w, "\nviews (%d):\n", len(live))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tFORMAT\tDIMENSION\tMIPS\tLAYERS")
	for _, v := range live {
		info := v.info
		fmt.Fprintf(tw, "%s\t%v\t%v\t%d+%d\t%d+%d\n", info.Label, info.Format, info.Dimension,
			info.BaseMipLevel, info.MipLevelCount, info.BaseArrayLayer, info.ArrayLayerCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nbudget: %s\n", dev.budget.Stats())
	return nil
}
