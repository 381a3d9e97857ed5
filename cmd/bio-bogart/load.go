package main

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"

	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/overlap"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// readRecordRow is the on-disk shape of one readinfo.Record, one row per
// read, tab-separated.
type readRecordRow struct {
	ID      uint32
	Length  uint32
	MateID  uint32
	Library uint32
	Ignore  bool
}

// loadReadInfo reads a reads.tsv sidecar (id, length, mate-id, library-id,
// ignore) into a *readinfo.ReadInfo. Building this table from the raw read
// set is outside bogart's scope; the CLI driver expects it to already
// exist, the same way bio-fusion expects its transcript table pre-built.
func loadReadInfo(ctx context.Context, path string) (*readinfo.ReadInfo, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "loading read info", path)
	}
	defer func() { _ = f.Close(ctx) }()

	r := tsv.NewReader(f.Reader(ctx))
	var records []readinfo.Record
	for {
		var row readRecordRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "parsing read info", path)
		}
		records = append(records, readinfo.Record{
			ID:      readinfo.ReadID(row.ID),
			Length:  row.Length,
			MateID:  readinfo.ReadID(row.MateID),
			Library: readinfo.Library(row.Library),
			Ignore:  row.Ignore,
		})
	}
	log.Info("loadReadInfo()-- loaded " + path)
	return readinfo.New(records), nil
}

// overlapRow is the on-disk shape of one overlap.Overlap.
type overlapRow struct {
	A, B     uint32
	AHang    int32
	BHang    int32
	Flipped  bool
	ErateBp1 float64
}

// loadOverlaps reads an overlaps.tsv sidecar into an *overlap.Cache.
func loadOverlaps(ctx context.Context, path string) (*overlap.Cache, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "loading overlaps", path)
	}
	defer func() { _ = f.Close(ctx) }()

	r := tsv.NewReader(f.Reader(ctx))
	var overlaps []overlap.Overlap
	for {
		var row overlapRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "parsing overlaps", path)
		}
		overlaps = append(overlaps, overlap.Overlap{
			A: readinfo.ReadID(row.A), B: readinfo.ReadID(row.B),
			AHang: row.AHang, BHang: row.BHang,
			Flipped: row.Flipped, ErateBp1: row.ErateBp1,
		})
	}
	log.Info("loadOverlaps()-- loaded " + path)
	return overlap.NewCache(overlaps), nil
}

// bestEdgeRow is the on-disk shape of one bestoverlap.EdgeOverlap entry.
type bestEdgeRow struct {
	ReadID uint32
	End3p  bool
	FragID uint32
	Frag3p bool
	AHang  int32
	BHang  int32
	Erate  float64
}

// bestContainRow is the on-disk shape of one bestoverlap.Containment
// entry.
type bestContainRow struct {
	ReadID          uint32
	Container       uint32
	IsContained     bool
	SameOrientation bool
	AHang           int32
	BHang           int32
}

// loadBestOverlapGraph reads edges.tsv and containments.tsv sidecars into
// a *bestoverlap.Graph.
func loadBestOverlapGraph(ctx context.Context, edgesPath, containsPath string) (*bestoverlap.Graph, error) {
	ef, err := file.Open(ctx, edgesPath)
	if err != nil {
		return nil, errors.E(err, "loading best edges", edgesPath)
	}
	defer func() { _ = ef.Close(ctx) }()

	best5 := make(map[readinfo.ReadID]bestoverlap.EdgeOverlap)
	best3 := make(map[readinfo.ReadID]bestoverlap.EdgeOverlap)

	er := tsv.NewReader(ef.Reader(ctx))
	for {
		var row bestEdgeRow
		if err := er.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "parsing best edges", edgesPath)
		}
		edge := bestoverlap.EdgeOverlap{
			FragID: readinfo.ReadID(row.FragID), Frag3p: row.Frag3p,
			AHang: row.AHang, BHang: row.BHang, Erate: row.Erate,
		}
		if row.End3p {
			best3[readinfo.ReadID(row.ReadID)] = edge
		} else {
			best5[readinfo.ReadID(row.ReadID)] = edge
		}
	}

	cf, err := file.Open(ctx, containsPath)
	if err != nil {
		return nil, errors.E(err, "loading containments", containsPath)
	}
	defer func() { _ = cf.Close(ctx) }()

	container := make(map[readinfo.ReadID]bestoverlap.Containment)
	cr := tsv.NewReader(cf.Reader(ctx))
	for {
		var row bestContainRow
		if err := cr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "parsing containments", containsPath)
		}
		container[readinfo.ReadID(row.ReadID)] = bestoverlap.Containment{
			Container: readinfo.ReadID(row.Container), IsContained: row.IsContained,
			SameOrientation: row.SameOrientation, AHang: row.AHang, BHang: row.BHang,
		}
	}

	log.Info("loadBestOverlapGraph()-- loaded " + edgesPath + " and " + containsPath)
	return bestoverlap.NewGraph(best5, best3, container), nil
}

// layoutRow is the on-disk shape of one ufNode, with rows for the same tig
// appearing consecutively and already in ufpath order. Initial unitig
// construction is out of this core's scope (spec.md §2); this is the
// sidecar the external layout builder hands bogart.
type layoutRow struct {
	TigID     uint32
	ReadID    uint32
	Contained uint32
	Parent    uint32
	AHang     int32
	BHang     int32
	Bgn       int32
	End       int32
}

// loadInitialLayout reads an initial-layout sidecar into a *tig.TigVector,
// one unitig per contiguous run of identical TigID values.
func loadInitialLayout(ctx context.Context, path string, numReads readinfo.ReadID) (*tig.TigVector, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "loading initial layout", path)
	}
	defer func() { _ = f.Close(ctx) }()

	tv := tig.New(numReads)

	var cur *tig.Unitig
	var curTigID uint32
	haveCur := false

	r := tsv.NewReader(f.Reader(ctx))
	for {
		var row layoutRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "parsing initial layout", path)
		}

		if !haveCur || row.TigID != curTigID {
			u, err := tv.NewUnitig(false)
			if err != nil {
				return nil, errors.E(err, "allocating unitig for initial layout", path)
			}
			cur = u
			curTigID = row.TigID
			haveCur = true
		}

		node := tig.UFNode{
			Ident:     readinfo.ReadID(row.ReadID),
			Contained: readinfo.ReadID(row.Contained),
			Parent:    readinfo.ReadID(row.Parent),
			AHang:     row.AHang,
			BHang:     row.BHang,
			Position:  tig.Position{Bgn: row.Bgn, End: row.End},
		}
		cur.AddRead(node, 0, false)
	}

	log.Info("loadInitialLayout()-- loaded " + path)
	return tv, nil
}
