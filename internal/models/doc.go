// Package models defines the data exchanged with the course-generation backend and the client-side artifacts derived from it.
//
// Request side:
//   - [Form] : raw user input as typed into the form
//   - [GenerationRequest] : the JSON body sent to POST /api/generate
//
// Response side:
//   - [GenerationResult] : the backend's answer, keeping the raw bytes so exports are byte-for-byte faithful
//   - [Curriculum], [Chapter] : the course outline
//   - [VisualDesign], [Slide], [SlideContent] : the slide deck
//
// Client side:
//   - [Artifact] : a downloadable output file (slide PNG, JSON dump, media file)
//   - [StoredResult] : a generation result persisted in the local history
package models
