// Package catalog は商品の登録・更新で画像サービスと商品サービスを順に呼び出すオーケストレーションを提供する。
//
// 手順は常に逐次で、先に画像をアップロードし、その参照を使って商品を登録・更新する。
// 2番目の手順が失敗しても、アップロード済みの画像は補償せずに残す（孤立した画像のIDはログに出力する）。
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/censudex/internal/backend"
	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// Step はオーケストレーションの手順。
type Step string

const (
	// StepUpload は画像のアップロード。
	StepUpload Step = "upload"
	// StepProduct は商品の登録・更新。
	StepProduct Step = "product"
)

// StepError はどの手順で失敗したかを保持するエラー。
type StepError struct {
	// Step は失敗した手順。
	Step Step
	// Failure はバックエンドの失敗。
	Failure *rpcstatus.Failure
}

// Error はerrorインターフェースを実装する。
func (e *StepError) Error() string {
	return fmt.Sprintf("%s step: %v", e.Step, e.Failure)
}

// Unwrap は内部の Failure を返す。
func (e *StepError) Unwrap() error {
	return e.Failure
}

// FailedStep はエラーが StepError の場合にその手順を返す。
func FailedStep(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}
	return "", false
}

// Orchestrator は画像と商品の呼び出しを組み合わせる。
// リクエスト間で状態を持たない。
type Orchestrator struct {
	images   backend.Images
	products backend.Products
	logger   *slog.Logger
}

// NewOrchestrator は新しい Orchestrator を生成する。
func NewOrchestrator(images backend.Images, products backend.Products, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		images:   images,
		products: products,
		logger:   logger,
	}
}

// Create は画像をアップロードしてから商品を登録する。
func (o *Orchestrator) Create(ctx context.Context, in dto.CreateProduct, image []byte) (dto.Product, error) {
	ref, err := o.images.Upload(ctx, image)
	if err != nil {
		return dto.Product{}, stepError(StepUpload, err)
	}

	product, err := o.products.Store(ctx, in, ref)
	if err != nil {
		o.logOrphan(ctx, ref, err)
		return dto.Product{}, stepError(StepProduct, err)
	}
	return product, nil
}

// Edit は商品を更新する。image が nil の場合はアップロードを行わず、現在の画像を保持する。
func (o *Orchestrator) Edit(ctx context.Context, id string, in dto.EditProduct, image []byte) (dto.Product, error) {
	var ref *dto.ImageRef
	if image != nil {
		uploaded, err := o.images.Upload(ctx, image)
		if err != nil {
			return dto.Product{}, stepError(StepUpload, err)
		}
		ref = &uploaded
	}

	product, err := o.products.Edit(ctx, id, in, ref)
	if err != nil {
		if ref != nil {
			o.logOrphan(ctx, *ref, err)
		}
		return dto.Product{}, stepError(StepProduct, err)
	}
	return product, nil
}

func (o *Orchestrator) logOrphan(ctx context.Context, ref dto.ImageRef, cause error) {
	o.logger.WarnContext(ctx, "商品の保存に失敗したため画像が孤立",
		"image_id", ref.ID,
		"url", ref.URL,
		"error", cause,
	)
}

func stepError(step Step, err error) error {
	return &StepError{Step: step, Failure: rpcstatus.FromError(err)}
}
