package audiodeck

import "regexp"

// Windows likes to replace "Foo" with "2- Foo" after re-enumerating a device.
var ordinalPrefix = regexp.MustCompile(`^([0-9]+- )?(.+)$`)

// FuzzifyInterface strips the numeric ordinal prefix the OS injects into
// interface names across reboots.
func FuzzifyInterface(name string) string {
	captures := ordinalPrefix.FindStringSubmatch(name)
	if captures == nil {
		return name
	}
	return captures[2]
}

// VolatileID translates a configured device into its currently valid ID.
//
// With MatchID the configured ID is passed through untouched; liveness is the
// caller's problem. With MatchFuzzy a connected device with the same ID wins
// outright, otherwise the first connected device of the same direction whose
// normalized interface name and exact endpoint name match is taken, in
// provider enumeration order. If nothing matches the stale configured ID is
// returned so the caller's liveness check fails in the usual way.
//
// The result must be recomputed on every use; the live set changes under us.
func VolatileID(device Device, strategy MatchStrategy, live []Device) string {
	if device.ID == "" {
		return ""
	}

	if strategy == MatchID {
		return device.ID
	}

	for _, other := range live {
		if other.ID == device.ID && other.State == StateConnected {
			return device.ID
		}
	}

	fuzzyInterface := FuzzifyInterface(device.InterfaceName)
	for _, other := range live {
		if other.State != StateConnected {
			continue
		}
		if device.Direction != "" && other.Direction != device.Direction {
			continue
		}
		if FuzzifyInterface(other.InterfaceName) != fuzzyInterface {
			continue
		}
		if other.EndpointName != device.EndpointName {
			continue
		}
		return other.ID
	}

	return device.ID
}

// VolatilePrimaryID resolves the primary slot against a live snapshot.
func (bs ButtonSettings) VolatilePrimaryID(live []Device) string {
	return VolatileID(bs.PrimaryDevice, bs.MatchStrategy, live)
}

// VolatileSecondaryID resolves the secondary slot against a live snapshot.
func (bs ButtonSettings) VolatileSecondaryID(live []Device) string {
	return VolatileID(bs.SecondaryDevice, bs.MatchStrategy, live)
}
