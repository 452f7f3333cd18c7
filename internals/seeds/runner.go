package seeds

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	contentBlockDTO "university_backend/internals/features/home/content_blocks/dto"
	contentBlockModel "university_backend/internals/features/home/content_blocks/model"
	quickServiceDTO "university_backend/internals/features/home/quick_services/dto"
	quickServiceModel "university_backend/internals/features/home/quick_services/model"
	orderingRepo "university_backend/internals/features/ordering/repository"
	helper "university_backend/internals/helpers"
)

const DefaultFile = "internals/seeds/data/home.yaml"

type QuickServiceSeed struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Icon        string         `yaml:"icon"`
	URL         string         `yaml:"url"`
	Active      *bool          `yaml:"active"`
	Metadata    map[string]any `yaml:"metadata"`
}

type ContentBlockSeed struct {
	Page      string         `yaml:"page"`
	Kind      string         `yaml:"kind"`
	Title     string         `yaml:"title"`
	Body      string         `yaml:"body"`
	Metadata  map[string]any `yaml:"metadata"`
	Published *bool          `yaml:"published"`
}

type File struct {
	QuickServices []QuickServiceSeed `yaml:"quick_services"`
	ContentBlocks []ContentBlockSeed `yaml:"content_blocks"`
}

type Result struct {
	QuickServices int
	ContentBlocks int
	Skipped       int
}

func LoadFile(path string) (*File, error) {
	log.Println("📥 Membaca file:", path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("baca file seed: %w", err)
	}
	return Parse(content)
}

func Parse(content []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return &f, nil
}

func RunFile(ctx context.Context, db *gorm.DB, path string) (Result, error) {
	f, err := LoadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Run(ctx, db, f)
}

// Run memasukkan data sesuai urutan file; item baru selalu di posisi max+1.
// Item yang sudah ada (judul sama) dilewati.
func Run(ctx context.Context, db *gorm.DB, f *File) (Result, error) {
	var res Result

	for i, s := range f.QuickServices {
		req := quickServiceDTO.CreateQuickServiceRequest{
			QuickServiceTitle:       s.Title,
			QuickServiceDescription: s.Description,
			QuickServiceIcon:        s.Icon,
			QuickServiceURL:         s.URL,
			QuickServiceIsActive:    s.Active,
			QuickServiceMetadata:    s.Metadata,
		}
		if err := validate(&req, quickServiceDTO.ValidateMetadata(s.Metadata)); err != nil {
			return res, fmt.Errorf("quick_services[%d] %q: %w", i, s.Title, err)
		}

		var exists int64
		if err := db.WithContext(ctx).Model(&quickServiceModel.QuickServiceModel{}).
			Where("quick_service_title = ?", req.QuickServiceTitle).Count(&exists).Error; err != nil {
			return res, err
		}
		if exists > 0 {
			log.Printf("ℹ️ Quick service %q sudah ada, lewati...", s.Title)
			res.Skipped++
			continue
		}

		qs := req.ToModel()
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err := orderingRepo.NewPositionRepository(tx).ReserveNext(ctx, quickServiceModel.QuickServiceList())
			if err != nil {
				return err
			}
			qs.QuickServiceDisplayOrder = next
			return tx.Create(qs).Error
		})
		if err != nil {
			return res, fmt.Errorf("insert quick service %q: %w", s.Title, err)
		}
		log.Printf("✅ Berhasil insert quick service %q (#%d)", s.Title, qs.QuickServiceDisplayOrder)
		res.QuickServices++
	}

	for i, s := range f.ContentBlocks {
		published := true
		if s.Published != nil {
			published = *s.Published
		}
		req := contentBlockDTO.CreateContentBlockRequest{
			ContentBlockPage:        s.Page,
			ContentBlockKind:        s.Kind,
			ContentBlockTitle:       s.Title,
			ContentBlockBody:        s.Body,
			ContentBlockMetadata:    s.Metadata,
			ContentBlockIsPublished: published,
		}
		if err := validate(&req, contentBlockDTO.ValidateMetadata(contentBlockModel.ContentBlockKind(s.Kind), s.Metadata)); err != nil {
			return res, fmt.Errorf("content_blocks[%d] (%s/%s): %w", i, s.Page, s.Kind, err)
		}

		cb := req.ToModel()
		var exists int64
		if err := db.WithContext(ctx).Model(&contentBlockModel.ContentBlockModel{}).
			Where("content_block_page = ? AND content_block_kind = ?", cb.ContentBlockPage, cb.ContentBlockKind).
			Where("content_block_title = ? AND content_block_body = ?", cb.ContentBlockTitle, cb.ContentBlockBody).
			Count(&exists).Error; err != nil {
			return res, err
		}
		if exists > 0 {
			log.Printf("ℹ️ Content block %s/%s %q sudah ada, lewati...", cb.ContentBlockPage, cb.ContentBlockKind, cb.ContentBlockTitle)
			res.Skipped++
			continue
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err := orderingRepo.NewPositionRepository(tx).ReserveNext(ctx, contentBlockModel.PageList(cb.ContentBlockPage))
			if err != nil {
				return err
			}
			cb.ContentBlockOrder = next
			return tx.Create(cb).Error
		})
		if err != nil {
			return res, fmt.Errorf("insert content block %s/%s: %w", s.Page, s.Kind, err)
		}
		res.ContentBlocks++
	}

	log.Printf("✅ Seed selesai: %d quick services, %d content blocks, %d dilewati", res.QuickServices, res.ContentBlocks, res.Skipped)
	return res, nil
}

func validate(req any, metaErrs map[string][]string) error {
	if err := helper.Validate.Struct(req); err != nil {
		if fields, ok := helper.ValidationErrors(err); ok {
			return fmt.Errorf("validasi gagal: %v", fields)
		}
		return err
	}
	if len(metaErrs) > 0 {
		return fmt.Errorf("metadata tidak valid: %v", metaErrs)
	}
	return nil
}
