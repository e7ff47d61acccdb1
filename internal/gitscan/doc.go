// Package gitscan inspects every git repository under a root and summarizes their health.
//
// Service locates repositories and inspects them one at a time in discovery
// order. Inspector derives a RepositoryRecord from three read-only git queries;
// any failure of the branch or status query turns the record into an error
// record instead of aborting the scan. TextPresenter renders the report for
// terminals.
package gitscan
