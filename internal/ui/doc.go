// Package ui holds the bubbletea terminal front end: the crop editor that
// implements session.Selector, the overwrite prompt that implements
// cropper.Confirmer, and the directory picker used when no input folder is
// given on the command line.
//
// Each interaction runs its own short-lived tea.Program so the session loop
// stays a plain for loop and logging can be held between programs.
package ui
