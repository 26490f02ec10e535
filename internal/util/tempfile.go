package util

import (
	"log"
	"os"
)

// TempArtifacts : регистрирует созданные временные файлы и гарантирует их
// удаление на всех ошибочных путях. При успехе вызывается Release —
// владение файлами переходит вызывающему
type TempArtifacts struct {
	paths []string
}

func NewTempArtifacts() *TempArtifacts {
	return &TempArtifacts{}
}

// Add : регистрирует путь для удаления
func (t *TempArtifacts) Add(path string) {
	t.paths = append(t.paths, path)
}

// Forget : снимает путь с учета (файл уже удален или поглощен архивом)
func (t *TempArtifacts) Forget(path string) {
	for i, p := range t.paths {
		if p == path {
			t.paths = append(t.paths[:i], t.paths[i+1:]...)
			return
		}
	}
}

// Cleanup : удаляет все зарегистрированные файлы, ошибки только логируются
func (t *TempArtifacts) Cleanup() {
	for _, p := range t.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("[TempArtifacts] не удалось удалить временный файл %s: %v", p, err)
		}
	}
	t.paths = nil
}

// Release : передает владение файлами вызывающему
func (t *TempArtifacts) Release() {
	t.paths = nil
}
