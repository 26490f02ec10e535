package service

import (
	"context"
	"fmt"
	"log"
	"media-shop-server/config"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/util"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultWatermarkText = "DIGITAL PRODUCTS"
	defaultScale         = 0.08
	defaultMinPointSize  = 32
	defaultMaxPointSize  = 180
	defaultVideoScale    = 0.06
	defaultToolTimeout   = 2 * time.Minute
)

// MediaService : наносит водяной знак через внешние инструменты:
// imagemagick (identify/convert) для изображений, ffmpeg для видео
type MediaService struct {
	cfg *config.WatermarkConfig
}

func NewMediaService(cfg *config.WatermarkConfig) (*MediaService, error) {
	if cfg.TmpDir == "" {
		cfg.TmpDir = filepath.Join(os.TempDir(), "media-shop")
	}
	if err := os.MkdirAll(cfg.TmpDir, 0755); err != nil {
		return nil, util.LogError("[MediaService] не удалось создать временную директорию", err)
	}

	return &MediaService{cfg: cfg}, nil
}

// Transform : мастер-файл -> временный файл с водяным знаком.
// requestedFormat == "" оставляет формат мастера; удаление результата — на вызывающем
func (s *MediaService) Transform(ctx context.Context, masterPath string, originalFormat model.FormatType, requestedFormat model.FormatType) (*model.PreparedFile, error) {
	if _, err := os.Stat(masterPath); err != nil {
		return nil, apperror.Internal("мастер-файл продукта отсутствует на сервере", err)
	}

	switch {
	case originalFormat.IsImage():
		if requestedFormat != "" && !requestedFormat.IsImage() {
			return nil, apperror.BadRequest(fmt.Sprintf("формат '%s' недопустим для изображений", requestedFormat))
		}
		return s.watermarkImage(ctx, masterPath, originalFormat, requestedFormat)

	case originalFormat.IsVideo():
		if requestedFormat != "" && requestedFormat != originalFormat {
			return nil, apperror.BadRequest("смена формата для видео не поддерживается")
		}
		return s.watermarkVideo(ctx, masterPath)

	default:
		return nil, apperror.BadRequest(fmt.Sprintf("неподдерживаемый формат мастер-файла: %s", originalFormat))
	}
}

// watermarkImage : текстовая метка размером в долю меньшей стороны,
// белая заливка с черной обводкой, композит по центру
func (s *MediaService) watermarkImage(ctx context.Context, masterPath string, originalFormat model.FormatType, requestedFormat model.FormatType) (*model.PreparedFile, error) {
	outFormat := originalFormat
	if requestedFormat != "" {
		outFormat = requestedFormat
	}

	tctx, cancel := context.WithTimeout(ctx, s.toolTimeout())
	defer cancel()

	width, height, err := s.identifyImage(tctx, masterPath)
	if err != nil {
		return nil, err
	}

	pointSize := WatermarkPointSize(width, height, s.scale(), s.minPointSize(), s.maxPointSize())
	outPath := s.tempName(masterPath, string(outFormat))

	args := []string{
		masterPath,
		"(",
		"-background", "none",
		"-fill", "#FFFFFF",
		"-stroke", "#000000",
		"-strokewidth", "2",
		"-font", s.cfg.ImageFontPath,
		"-pointsize", strconv.Itoa(pointSize),
		"label:" + SafeWatermarkText(s.watermarkText()),
		")",
		"-gravity", "center",
		"-compose", "over",
		"-composite",
		outPath,
	}

	if output, err := exec.CommandContext(tctx, "convert", args...).CombinedOutput(); err != nil {
		// не оставляем частично записанный файл
		if removeErr := os.Remove(outPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("[MediaService] не удалось удалить частичный файл %s: %v", outPath, removeErr)
		}
		return nil, apperror.Internal(fmt.Sprintf("ошибка convert: %s", strings.TrimSpace(string(output))), err)
	}

	return &model.PreparedFile{
		FilePath:    outPath,
		FileName:    filepath.Base(outPath),
		ContentType: outFormat.MimeType(),
	}, nil
}

// watermarkVideo : drawtext по центру кадра на полупрозрачной подложке,
// контейнер mp4 с faststart
func (s *MediaService) watermarkVideo(ctx context.Context, masterPath string) (*model.PreparedFile, error) {
	outPath := s.tempName(masterPath, string(model.FormatMP4))

	drawtext := fmt.Sprintf(
		"drawtext=fontfile=%s:text='%s':fontsize=h*%g:fontcolor=white:box=1:boxcolor=black@0.5:boxborderw=10:x=(w-text_w)/2:y=(h-text_h)/2",
		s.cfg.VideoFontPath,
		SafeWatermarkText(s.watermarkText()),
		s.videoScale(),
	)

	args := []string{
		"-y",
		"-i", masterPath,
		"-vf", drawtext,
		"-movflags", "faststart",
		outPath,
	}

	tctx, cancel := context.WithTimeout(ctx, s.toolTimeout())
	defer cancel()

	if output, err := exec.CommandContext(tctx, "ffmpeg", args...).CombinedOutput(); err != nil {
		if removeErr := os.Remove(outPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("[MediaService] не удалось удалить частичный файл %s: %v", outPath, removeErr)
		}
		return nil, apperror.Internal(fmt.Sprintf("ошибка ffmpeg: %s", strings.TrimSpace(string(output))), err)
	}

	return &model.PreparedFile{
		FilePath:    outPath,
		FileName:    filepath.Base(outPath),
		ContentType: model.FormatMP4.MimeType(),
	}, nil
}

// identifyImage : размеры изображения через imagemagick identify
func (s *MediaService) identifyImage(ctx context.Context, masterPath string) (int, int, error) {
	output, err := exec.CommandContext(ctx, "identify", "-format", "%w %h", masterPath+"[0]").Output()
	if err != nil {
		return 0, 0, apperror.Internal("ошибка identify", err)
	}

	parts := strings.Fields(strings.TrimSpace(string(output)))
	if len(parts) != 2 {
		return 0, 0, apperror.Internal(fmt.Sprintf("неожиданный вывод identify: %q", string(output)), nil)
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, apperror.Internal("ошибка разбора ширины изображения", err)
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, apperror.Internal("ошибка разбора высоты изображения", err)
	}

	return width, height, nil
}

// tempName : детерминированное имя временного файла {base}-wm-{timestamp}.{ext}
func (s *MediaService) tempName(masterPath string, ext string) string {
	base := strings.TrimSuffix(filepath.Base(masterPath), filepath.Ext(masterPath))
	return filepath.Join(s.cfg.TmpDir, fmt.Sprintf("%s-wm-%d.%s", base, time.Now().UnixNano(), ext))
}

func (s *MediaService) TmpDir() string {
	return s.cfg.TmpDir
}

func (s *MediaService) watermarkText() string {
	if s.cfg.Text != "" {
		return s.cfg.Text
	}
	return defaultWatermarkText
}

func (s *MediaService) scale() float64 {
	if s.cfg.Scale > 0 {
		return s.cfg.Scale
	}
	return defaultScale
}

func (s *MediaService) minPointSize() int {
	if s.cfg.MinPointSize > 0 {
		return s.cfg.MinPointSize
	}
	return defaultMinPointSize
}

func (s *MediaService) maxPointSize() int {
	if s.cfg.MaxPointSize > 0 {
		return s.cfg.MaxPointSize
	}
	return defaultMaxPointSize
}

func (s *MediaService) videoScale() float64 {
	if s.cfg.VideoScale > 0 {
		return s.cfg.VideoScale
	}
	return defaultVideoScale
}

func (s *MediaService) toolTimeout() time.Duration {
	if d, err := time.ParseDuration(s.cfg.ToolTimeout); err == nil && d > 0 {
		return d
	}
	return defaultToolTimeout
}

// WatermarkPointSize : размер шрифта метки — доля меньшей стороны,
// зажатая в [minPt, maxPt]
func WatermarkPointSize(width, height int, scale float64, minPt, maxPt int) int {
	short := width
	if height < short {
		short = height
	}

	pt := int(float64(short)*scale + 0.5)
	if pt < minPt {
		return minPt
	}
	if pt > maxPt {
		return maxPt
	}
	return pt
}

// SafeWatermarkText : экранирует символы, ломающие аргументы drawtext/label
func SafeWatermarkText(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, `:`, `\:`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
