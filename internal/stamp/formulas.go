package stamp

import (
	"fmt"
)

// dstAdjust shifts epoch seconds by one hour for each DST flag that applies.
// A positive inversion adds the file's DST hour and removes the current one.
func dstAdjust(seconds int64, dstForFile, dstNow bool, inversion int64) int64 {
	seconds += 3600 * boolInt(dstForFile) * inversion
	seconds -= 3600 * boolInt(dstNow) * inversion
	return seconds
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// realValue fetches the value of a view that must have one.
func realValue(v View, role string) (CanonicalTime, error) {
	t, ok := v.Get()
	if !ok {
		return CanonicalTime{}, fmt.Errorf("%s view has no value: %w", role, ErrConversionInconsistency)
	}
	return t, nil
}

// LinuxView shows what Linux reports for a FAT file written by Windows:
// the standard UTC offset is applied a second time to FAT's local time.
// It only exists on Windows hosts for local-time filesystems.
type LinuxView struct {
	annotation
	local View
	zone  Zone
	codec Codec
	value CanonicalTime
}

// NewLinuxView returns the Linux interpretation of local. Unless the host
// is Windows and the filesystem stores local time, that is local itself.
func NewLinuxView(ctx DirectoryContext, zone Zone, local View) (View, error) {
	if !ctx.hostWindows() || ctx.FilesystemUTC {
		return local, nil
	}

	base, err := realValue(local, "local")
	if err != nil {
		return nil, err
	}

	v := &LinuxView{
		local: local,
		zone:  zone,
		codec: NewCodec(zone.Location()),
	}
	v.value = v.formula(base, +1)
	if err := verify("linux forward/inverse", base, v.formula(v.value, -1)); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *LinuxView) formula(t CanonicalTime, inversion int64) CanonicalTime {
	raw := v.codec.ToRaw(t, Local)
	raw += int64(v.zone.StandardOffset()) * inversion
	return v.codec.FromRaw(raw, Local)
}

func (v *LinuxView) Kind() Kind                 { return KindLinux }
func (v *LinuxView) Display() string            { return v.value.String() }
func (v *LinuxView) SortKey() CanonicalTime     { return v.value }
func (v *LinuxView) Get() (CanonicalTime, bool) { return v.value, true }

// Set converts t back into the Local view and writes it there.
func (v *LinuxView) Set(t CanonicalTime) error {
	base := v.formula(t, -1)
	if err := verify("linux inverse/forward", t, v.formula(base, +1)); err != nil {
		return err
	}
	if err := v.local.Set(base); err != nil {
		return err
	}

	written, err := realValue(v.local, "local")
	if err != nil {
		return err
	}
	v.value = v.formula(written, +1)
	return nil
}

// WindowsView shows what Windows Explorer displays for a file.
//
// The old flavour reproduces the classic defect where a file's time is
// shifted by the difference between its own DST state and the current one.
// The new flavour applies the same shift to UTC base seconds in the other
// direction and no longer knows whether DST applied.
type WindowsView struct {
	annotation
	kind       Kind
	base       View
	codec      Codec
	dstForFile bool
	dstNow     bool
	value      CanonicalTime
}

// NewWindowsView returns the old or new Windows interpretation of a file.
// Two of the four filesystem/flavour combinations are the local or gmt view
// itself and are returned as is, so writes through them hit the same storage.
//
//	host     filesystem  flavour  result
//	windows  local       new      local
//	windows  local       old      Windows-old over local
//	linux    local       new      Windows-new over gmt
//	linux    local       old      gmt
//	any      utc         new      local
//	any      utc         old      Windows-old over local
func NewWindowsView(ctx DirectoryContext, zone Zone, newWindows bool, local, gmt View) (View, error) {
	if !ctx.FilesystemUTC {
		if ctx.hostWindows() && newWindows {
			return local, nil
		}
		if !ctx.hostWindows() && !newWindows {
			return gmt, nil
		}
	} else if newWindows {
		return local, nil
	}

	localValue, err := realValue(local, "local")
	if err != nil {
		return nil, err
	}

	v := &WindowsView{
		kind:       KindWindowsOld,
		base:       local,
		codec:      NewCodec(zone.Location()),
		dstForFile: localValue.DST == DSTYes,
		dstNow:     ctx.DSTNow,
	}
	if newWindows {
		v.kind = KindWindowsNew
		v.base = gmt
	}

	base, err := realValue(v.base, "base")
	if err != nil {
		return nil, err
	}
	v.value = v.formula(base, +1)
	if err := verify(v.kind.String()+" forward/inverse", base, v.formula(v.value, -1)); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *WindowsView) formula(t CanonicalTime, inversion int64) CanonicalTime {
	if v.kind == KindWindowsNew {
		raw := dstAdjust(v.codec.ToRaw(t, UTC), v.dstForFile, v.dstNow, inversion)
		out := v.codec.FromRaw(raw, UTC)
		out.DST = DSTUnknown
		return out
	}
	raw := dstAdjust(v.codec.ToRaw(t, Local), v.dstForFile, v.dstNow, -inversion)
	return v.codec.FromRaw(raw, Local)
}

func (v *WindowsView) Kind() Kind                 { return v.kind }
func (v *WindowsView) Display() string            { return v.value.String() }
func (v *WindowsView) SortKey() CanonicalTime     { return v.value }
func (v *WindowsView) Get() (CanonicalTime, bool) { return v.value, true }

// Set converts t back into the base view the formula reads from and writes it there.
func (v *WindowsView) Set(t CanonicalTime) error {
	base := v.formula(t, -1)
	if err := verify(v.kind.String()+" inverse/forward", t, v.formula(base, +1)); err != nil {
		return err
	}
	if err := v.base.Set(base); err != nil {
		return err
	}

	written, err := realValue(v.base, "base")
	if err != nil {
		return err
	}
	v.value = v.formula(written, +1)
	return nil
}
