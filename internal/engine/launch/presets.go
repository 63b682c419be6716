package launch

import "fmt"

// JVM tuning presets. Flags come before the user's custom flags, so custom
// flags win positionally on conflict.
var presetFlags = map[string][]string{
	"low_memory": {
		"-XX:+UseSerialGC",
	},
	"aikars": {
		"-XX:+UseG1GC",
		"-XX:+ParallelRefProcEnabled",
		"-XX:MaxGCPauseMillis=200",
		"-XX:+UnlockExperimentalVMOptions",
		"-XX:+DisableExplicitGC",
		"-XX:+AlwaysPreTouch",
		"-XX:G1NewSizePercent=30",
		"-XX:G1MaxNewSizePercent=40",
		"-XX:G1HeapRegionSize=8M",
		"-XX:G1ReservePercent=20",
		"-XX:G1HeapWastePercent=5",
		"-XX:G1MixedGCCountTarget=4",
		"-XX:InitiatingHeapOccupancyPercent=15",
		"-XX:G1MixedGCLiveThresholdPercent=90",
		"-XX:G1RSetUpdatingPauseTimePercent=5",
		"-XX:SurvivorRatio=32",
		"-XX:+PerfDisableSharedMem",
		"-XX:MaxTenuringThreshold=1",
	},
	"zgc": {
		"-XX:+UseZGC",
	},
	"zgc_gen": {
		"-XX:+UseZGC",
		"-XX:+ZGenerational",
	},
	"shenandoah": {
		"-XX:+UseShenandoahGC",
	},
	"ultimate": {
		"-XX:+UnlockExperimentalVMOptions",
		"-XX:+UnlockDiagnosticVMOptions",
		"-XX:+AlwaysActAsServerClassMachine",
		"-XX:+AlwaysPreTouch",
		"-XX:+DisableExplicitGC",
		"-XX:+UseNUMA",
		"-XX:NmethodSweepActivity=1",
		"-XX:ReservedCodeCacheSize=400M",
		"-XX:NonNMethodCodeHeapSize=12M",
		"-XX:ProfiledCodeHeapSize=194M",
		"-XX:NonProfiledCodeHeapSize=194M",
		"-XX:-DontCompileHugeMethods",
		"-XX:MaxNodeLimit=240000",
		"-XX:NodeLimitFudgeFactor=8000",
		"-XX:+UseVectorCmov",
		"-XX:+PerfDisableSharedMem",
		"-XX:+UseFastUnorderedTimeStamps",
		"-XX:+UseCriticalJavaThreadPriority",
		"-XX:ThreadPriorityPolicy=1",
		"-XX:AllocatePrefetchStyle=3",
	},
}

// PresetFlags expands a preset name into its JVM flags. The aikars preset
// additionally pins the initial heap to the maximum, as it prescribes.
func PresetFlags(name string, memoryMB int) ([]string, bool) {
	flags, ok := presetFlags[name]
	if !ok {
		return nil, false
	}
	out := append([]string(nil), flags...)
	if name == "aikars" {
		out = append(out, fmt.Sprintf("-Xms%dM", memoryMB))
	}
	return out, true
}
