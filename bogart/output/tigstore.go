// Package output serializes finished unitigs into a tig-store plus the
// auxiliary files downstream consensus/scaffolding steps read: an
// iid/partition map, a partitioning summary, and coverage-stat histograms.
//
// The tig-store itself is a recordio stream. Its payload is encoded by
// hand with binary.LittleEndian, the same pattern grailbio/bio's own
// pileup/snp/basestrand.go uses for its recordio records, rather than
// through generated protobuf code: there is no protoc invocation in this
// build, so a hand-rolled "generated" .pb.go would only be pretend
// protobuf support.
package output

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/base/tsv"

	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

func init() {
	recordiozstd.Register()
}

const tigRecordVersion = 1

// multiAlignRecord is the wire shape of one unitig in the tig-store: a
// header (tig id, length, status flags, coverage stat) followed by one
// fixed-width row per placed read. It corresponds to the original
// MultiAlign/IntMultiPos pair, flattened into a single record.
type multiAlignRecord struct {
	tigID           tig.TigID
	length          int32
	isUnassembled   bool
	isRepeat        bool
	isCircular      bool
	isBubble        bool
	coverageStat    float64
	microhetProb    float64
	reads           []tig.UFNode
}

func marshalMultiAlign(scratch []byte, p interface{}) ([]byte, error) {
	r := p.(*multiAlignRecord)

	buf := bytes.NewBuffer(scratch[:0])
	write := func(v interface{}) error { return binary.Write(buf, binary.LittleEndian, v) }

	if err := write(int32(tigRecordVersion)); err != nil {
		return nil, err
	}
	if err := write(uint32(r.tigID)); err != nil {
		return nil, err
	}
	if err := write(r.length); err != nil {
		return nil, err
	}
	if err := write(packFlags(r)); err != nil {
		return nil, err
	}
	if err := write(r.coverageStat); err != nil {
		return nil, err
	}
	if err := write(r.microhetProb); err != nil {
		return nil, err
	}
	if err := write(int32(len(r.reads))); err != nil {
		return nil, err
	}
	for _, n := range r.reads {
		if err := write(uint32(n.Ident)); err != nil {
			return nil, err
		}
		if err := write(uint32(n.Contained)); err != nil {
			return nil, err
		}
		if err := write(uint32(n.Parent)); err != nil {
			return nil, err
		}
		if err := write(n.AHang); err != nil {
			return nil, err
		}
		if err := write(n.BHang); err != nil {
			return nil, err
		}
		if err := write(n.Position.Bgn); err != nil {
			return nil, err
		}
		if err := write(n.Position.End); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func packFlags(r *multiAlignRecord) uint8 {
	var f uint8
	if r.isUnassembled {
		f |= 1 << 0
	}
	if r.isRepeat {
		f |= 1 << 1
	}
	if r.isCircular {
		f |= 1 << 2
	}
	if r.isBubble {
		f |= 1 << 3
	}
	return f
}

func unmarshalMultiAlign(in []byte) (interface{}, error) {
	r := bytes.NewReader(in)
	read := func(v interface{}) error { return binary.Read(r, binary.LittleEndian, v) }

	var version int32
	if err := read(&version); err != nil {
		return nil, err
	}
	if version != tigRecordVersion {
		return nil, fmt.Errorf("output: unrecognized tig record version %d", version)
	}

	rec := &multiAlignRecord{}
	var tigID, flags uint32
	var numReads int32

	if err := read(&tigID); err != nil {
		return nil, err
	}
	rec.tigID = tig.TigID(tigID)
	if err := read(&rec.length); err != nil {
		return nil, err
	}
	var flagByte uint8
	if err := read(&flagByte); err != nil {
		return nil, err
	}
	flags = uint32(flagByte)
	rec.isUnassembled = flags&(1<<0) != 0
	rec.isRepeat = flags&(1<<1) != 0
	rec.isCircular = flags&(1<<2) != 0
	rec.isBubble = flags&(1<<3) != 0

	if err := read(&rec.coverageStat); err != nil {
		return nil, err
	}
	if err := read(&rec.microhetProb); err != nil {
		return nil, err
	}
	if err := read(&numReads); err != nil {
		return nil, err
	}

	rec.reads = make([]tig.UFNode, numReads)
	for i := range rec.reads {
		var ident, contained, parent uint32
		if err := read(&ident); err != nil {
			return nil, err
		}
		if err := read(&contained); err != nil {
			return nil, err
		}
		if err := read(&parent); err != nil {
			return nil, err
		}
		n := &rec.reads[i]
		n.Ident = readinfo.ReadID(ident)
		n.Contained = readinfo.ReadID(contained)
		n.Parent = readinfo.ReadID(parent)
		if err := read(&n.AHang); err != nil {
			return nil, err
		}
		if err := read(&n.BHang); err != nil {
			return nil, err
		}
		if err := read(&n.Position.Bgn); err != nil {
			return nil, err
		}
		if err := read(&n.Position.End); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// WriteTigStore partitions every live unitig in tv into groups of at most
// readsPerPartition reads (never zero tigs per partition) and writes them
// as a recordio-backed stream at tigStorePath, alongside prefix.iidmap,
// prefix.partitioning, and prefix.partitioningInfo.
func WriteTigStore(ctx context.Context, tv *tig.TigVector, tigStorePath, prefix string, readsPerPartition int) error {
	if readsPerPartition <= 0 {
		readsPerPartition = 1
	}

	var ids []tig.TigID
	tv.Each(func(u *tig.Unitig) { ids = append(ids, u.ID()) })

	partitions := partition(tv, ids, readsPerPartition)

	if err := writeTigStream(ctx, tv, ids, tigStorePath); err != nil {
		return err
	}
	if err := writeIIDMap(ctx, tv, partitions, prefix+".iidmap"); err != nil {
		return err
	}
	if err := writePartitioning(ctx, tv, partitions, prefix+".partitioning"); err != nil {
		return err
	}
	if err := writePartitioningInfo(ctx, tv, partitions, prefix+".partitioningInfo"); err != nil {
		return err
	}
	return nil
}

// partition groups tig ids so each partition has at most readsPerPartition
// reads total, but every partition has at least one tig (a single unitig
// larger than the target still gets its own partition).
func partition(tv *tig.TigVector, ids []tig.TigID, readsPerPartition int) [][]tig.TigID {
	var partitions [][]tig.TigID
	var current []tig.TigID
	count := 0

	for _, id := range ids {
		u := tv.Get(id)
		if u == nil {
			continue
		}
		if len(current) > 0 && count+u.NumReads() > readsPerPartition {
			partitions = append(partitions, current)
			current = nil
			count = 0
		}
		current = append(current, id)
		count += u.NumReads()
	}
	if len(current) > 0 {
		partitions = append(partitions, current)
	}
	return partitions
}

func writeTigStream(ctx context.Context, tv *tig.TigVector, ids []tig.TigID, path string) (err error) {
	dst, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "output: creating tig store", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := recordio.NewWriter(dst.Writer(ctx), recordio.WriterOpts{
		Marshal:      marshalMultiAlign,
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(recordio.KeyTrailer, true)

	count := 0
	for _, id := range ids {
		u := tv.Get(id)
		if u == nil {
			continue
		}
		w.Append(toMultiAlignRecord(u))
		count++
	}

	w.SetTrailer(tigStoreTrailer(count))
	if err := w.Finish(); err != nil {
		return errors.E(err, "output: finishing tig store", path)
	}
	return nil
}

func tigStoreTrailer(numTigs int) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, int64(tigRecordVersion))
	_ = binary.Write(&buf, binary.LittleEndian, int64(numTigs))
	return buf.Bytes()
}

func toMultiAlignRecord(u *tig.Unitig) *multiAlignRecord {
	return &multiAlignRecord{
		tigID:         u.ID(),
		length:        u.Length(),
		isUnassembled: u.IsUnassembled,
		isRepeat:      u.IsRepeat,
		isCircular:    u.IsCircular,
		isBubble:      u.IsBubble,
		reads:         u.Ufpath,
	}
}

func writeIIDMap(ctx context.Context, tv *tig.TigVector, partitions [][]tig.TigID, path string) (err error) {
	dst, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "output: creating iidmap", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := dst.Writer(ctx)
	iumID := 0
	for pid, tigs := range partitions {
		for _, id := range tigs {
			u := tv.Get(id)
			if u == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "Unitig %d == IUM %d (in partition %d with %d frags)\n", id, iumID, pid, u.NumReads()); err != nil {
				return errors.E(err, "output: writing iidmap", path)
			}
			iumID++
		}
	}
	return nil
}

func writePartitioning(ctx context.Context, tv *tig.TigVector, partitions [][]tig.TigID, path string) (err error) {
	dst, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "output: creating partitioning", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := tsv.NewWriter(dst.Writer(ctx))
	for pid, tigs := range partitions {
		for _, id := range tigs {
			u := tv.Get(id)
			if u == nil {
				continue
			}
			for _, n := range u.Ufpath {
				w.WriteUint32(uint32(pid))
				w.WriteUint32(uint32(n.Ident))
				if err := w.EndLine(); err != nil {
					return errors.E(err, "output: writing partitioning", path)
				}
			}
		}
	}
	return w.Flush()
}

func writePartitioningInfo(ctx context.Context, tv *tig.TigVector, partitions [][]tig.TigID, path string) (err error) {
	dst, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "output: creating partitioningInfo", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := dst.Writer(ctx)
	for pid, tigs := range partitions {
		frags := 0
		for _, id := range tigs {
			if u := tv.Get(id); u != nil {
				frags += u.NumReads()
			}
		}
		if _, err := fmt.Fprintf(w, "Partition %d has %d unitigs and %d fragments.\n", pid, len(tigs), frags); err != nil {
			return errors.E(err, "output: writing partitioningInfo", path)
		}
	}
	return nil
}
