/*
Package minutes provides the meeting-minutes task kinds that ship with Arbor.

Each task builds a typed document from the run context (attendees, updates,
ideas, metrics...), renders it as markdown, persists both the markdown and a
JSON companion through an ArtifactStore, and reports the rendered text plus
the artifact locations in its output. The tasks register under the kinds
"minutes.standup", "minutes.brainstorm" and "minutes.allhands".

MeetingCycle returns the built-in flow that chains the three documents into
one brainstorm -> standup -> allhands run.
*/
package minutes
