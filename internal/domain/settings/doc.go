// Package settings manages the desktop's sound volume levels.
//
// Four categories exist: master, system, ui and feedback. Levels are clamped to
// [0,1] and persisted as a flat JSON object under StorageKey. The effective
// volume of a sound is master times its category level, or zero while muted.
package settings
